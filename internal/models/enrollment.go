package models

import "time"

// Enrollment ties a student to a classroom. A student can be enrolled in a
// classroom at most once.
type Enrollment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassroomID uint      `gorm:"not null;index;uniqueIndex:uq_enrollment_class_student" json:"classroom_id"`
	StudentID   uint      `gorm:"not null;index;uniqueIndex:uq_enrollment_class_student" json:"student_id"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"` // active | archived
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Classroom Classroom `gorm:"foreignKey:ClassroomID" json:"-"`
	Student   User      `gorm:"foreignKey:StudentID" json:"-"`
}
