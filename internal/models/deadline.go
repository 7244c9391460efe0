package models

import (
	"time"
)

// Deadline is an administrator-managed date. A deadline whose title contains
// the submission marker ("prijav") gates project creation while its date is
// still in the future; there is no separate category column.
type Deadline struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	DeadlineDate time.Time `gorm:"not null;index" json:"deadline_date"`
	CreatedBy    uint64    `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}
