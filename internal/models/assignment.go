package models

import "time"

type Assignment struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	ClassroomID       uint       `gorm:"not null;index" json:"classroom_id"`
	CreatedBy         uint       `gorm:"not null;index" json:"created_by"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Description       string     `gorm:"type:text" json:"description"`
	Category          string     `gorm:"size:80" json:"category"`
	TargetAmountCents int64      `gorm:"default:0" json:"target_amount_cents"`
	DueDate           *time.Time `json:"due_date"`
	Status            string     `gorm:"size:20;not null;default:'draft'" json:"status"` // draft | active | closed
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Classroom Classroom `gorm:"foreignKey:ClassroomID" json:"-"`
}
