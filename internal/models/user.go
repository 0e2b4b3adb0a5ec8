package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PRIMARY users own health data and invite
// relatives; RELATIVE users read the reports of the accounts that linked them.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username       string    `gorm:"not null;size:50;uniqueIndex" json:"username"`
	FullName       string    `gorm:"not null;size:100;index" json:"full_name"`
	Email          string    `gorm:"not null;size:120;uniqueIndex" json:"email"`
	Password       string    `gorm:"not null;size:120" json:"-"`
	PhoneNumber    string    `gorm:"size:15" json:"phone_number,omitempty"`
	Gender         string    `gorm:"size:10" json:"gender,omitempty"`
	Age            *int      `json:"age,omitempty"`
	MedicalHistory string    `gorm:"type:text" json:"medical_history,omitempty"`
	Role           Role      `gorm:"size:20;not null;default:'PRIMARY'" json:"role"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
