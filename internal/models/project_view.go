package models

import (
	"time"
)

// ProjectView is one raw view event. Anonymous views carry a nil UserID and
// nothing is deduplicated, so the view count is events, not unique visitors.
type ProjectView struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	UserID    *uint64   `gorm:"index" json:"user_id"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}
