package models

import "time"

// BudgetSubmission is a student's plan for an assignment. One submission per
// student per assignment.
type BudgetSubmission struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AssignmentID      uint      `gorm:"not null;index;uniqueIndex:uq_submission_assignment_student" json:"assignment_id"`
	StudentID         uint      `gorm:"not null;index;uniqueIndex:uq_submission_assignment_student" json:"student_id"`
	TotalPlannedCents int64     `gorm:"not null;default:0" json:"total_planned_cents"`
	Notes             string    `gorm:"type:text" json:"notes"`
	Status            string    `gorm:"size:20;not null;default:'submitted'" json:"status"` // submitted | approved | revise
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Assignment Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
	Student    User       `gorm:"foreignKey:StudentID" json:"-"`
}

type BudgetLineItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index" json:"submission_id"`
	Category     string    `gorm:"size:120;not null" json:"category"`
	AmountCents  int64     `gorm:"not null" json:"amount_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Submission BudgetSubmission `gorm:"foreignKey:SubmissionID" json:"-"`
}
