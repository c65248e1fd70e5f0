package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	Date           string    `json:"date" validate:"required,dateiso"`
	Time           string    `json:"time" validate:"required,clocktime"`
	Specialty      string    `json:"specialty" validate:"omitempty,max=100"`
}

// ListAppointmentsRequest carries the query-string filters of the listing
// endpoint. Zero values mean "no filter".
type ListAppointmentsRequest struct {
	StartDate      string    `json:"start_date" validate:"omitempty,dateiso"`
	EndDate        string    `json:"end_date" validate:"omitempty,dateiso"`
	Status         string    `json:"status" validate:"omitempty,oneof=scheduled confirmed canceled completed"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	PatientID      uuid.UUID `json:"patient_id"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	PatientName    string     `json:"patient_name"`
	ProfessionalID uuid.UUID  `json:"professional_id"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	Specialty      string     `json:"specialty,omitempty"`
	Status         string     `json:"status"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
