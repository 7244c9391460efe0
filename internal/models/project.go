package models

import (
	"time"
)

// Project is a student submission. Field names follow the submission form:
// naziv = title, opis = description, tehnologije = tech stack, ciljevi = goals,
// plan_rada = work plan.
type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	Naziv       string    `gorm:"type:varchar(255);not null" json:"naziv"`
	Opis        string    `gorm:"type:text" json:"opis"`
	Tehnologije string    `gorm:"type:text" json:"tehnologije"`
	Ciljevi     string    `gorm:"type:text" json:"ciljevi"`
	PlanRada    string    `gorm:"type:text" json:"plan_rada"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Votes    []Vote        `gorm:"foreignKey:ProjectID" json:"-"`
	Comments []Comment     `gorm:"foreignKey:ProjectID" json:"-"`
	Views    []ProjectView `gorm:"foreignKey:ProjectID" json:"-"`
	Files    []ProjectFile `gorm:"foreignKey:ProjectID" json:"-"`
}
