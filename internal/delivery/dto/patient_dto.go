package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	CPF      string `json:"cpf" validate:"omitempty,len=11,numeric"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type UpdatePatientRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	CPF      string `json:"cpf" validate:"omitempty,len=11,numeric"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

type PatientResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	CPF       string    `json:"cpf,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
