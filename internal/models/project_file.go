package models

import (
	"time"
)

// ProjectFile is the metadata row for a blob held in the object store under
// ObjectName. The blob itself is never deleted here; orphans are possible.
type ProjectFile struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	ProjectID    uint64    `gorm:"not null;index" json:"project_id"`
	UserID       *uint64   `json:"user_id"`
	ObjectName   string    `gorm:"type:varchar(512);not null" json:"object_name"`
	OriginalName string    `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType     string    `gorm:"type:varchar(127)" json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
