package models

import "time"

type Classroom struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TeacherID  uint      `gorm:"not null;index" json:"teacher_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	SchoolName string    `gorm:"size:255" json:"school_name"`
	GradeLevel string    `gorm:"size:50" json:"grade_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Teacher User `gorm:"foreignKey:TeacherID" json:"-"`
}
