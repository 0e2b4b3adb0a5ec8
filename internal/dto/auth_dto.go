package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=20"`
	FullName       string `json:"fullName" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=120"`
	Password       string `json:"password" validate:"required,min=6,max=40"`
	PhoneNumber    string `json:"phoneNumber,omitempty" validate:"max=15"`
	Gender         string `json:"gender,omitempty" validate:"max=10"`
	Age            *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// AddRelativeRequest creates a RELATIVE account linked to the caller.
type AddRelativeRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=20"`
	FullName    string `json:"fullName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=120"`
	Password    string `json:"password" validate:"required,min=6,max=40"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"max=15"`
	Gender      string `json:"gender,omitempty" validate:"max=10"`
	Age         *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

type JWTResponse struct {
	Token    string    `json:"token"`
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Role     string    `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Driver    string `json:"driver"`
}
