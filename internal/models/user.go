package models

import (
	"time"

	"endowal/internal/domain"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:255" json:"name"`
	Role         string    `gorm:"size:20;not null;index" json:"role"` // teacher | student | admin
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsTeacher() bool { return u.Role == domain.RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == domain.RoleStudent }
func (u *User) IsAdmin() bool   { return u.Role == domain.RoleAdmin }
