package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePreAppointmentRequest struct {
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	Date           string    `json:"date" validate:"required,dateiso"`
	Time           string    `json:"time" validate:"required,clocktime"`
	Notes          string    `json:"notes" validate:"omitempty,max=1000"`
}

// Response DTOs

type PreAppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	PatientName    string    `json:"patient_name"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PreAppointmentListResponse struct {
	PreAppointments []PreAppointmentResponse `json:"pre_appointments"`
	Total           int                      `json:"total"`
}
