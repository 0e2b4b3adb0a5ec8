package dto

import (
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
)

// UserResponse is the view of an account shown to other users. It carries
// neither the password hash nor any health or contact details.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

// ProfileResponse is the caller's own account, including personal details.
type ProfileResponse struct {
	UserResponse
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Age            *int   `json:"age,omitempty"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
}

func NewProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		UserResponse:   NewUserResponse(u),
		PhoneNumber:    u.PhoneNumber,
		Gender:         u.Gender,
		Age:            u.Age,
		MedicalHistory: u.MedicalHistory,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
