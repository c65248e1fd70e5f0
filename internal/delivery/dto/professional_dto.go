package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateProfessionalRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=255"`
	Specialty    string `json:"specialty" validate:"omitempty,max=100"`
	Registration string `json:"registration" validate:"omitempty,max=50"`
}

type UpdateProfessionalRequest struct {
	FullName     string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Specialty    string `json:"specialty" validate:"omitempty,max=100"`
	Registration string `json:"registration" validate:"omitempty,max=50"`
	Active       *bool  `json:"active"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Specialty    string    `json:"specialty,omitempty"`
	Registration string    `json:"registration,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}
