package entity

import (
	"github.com/google/uuid"

	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	StartDate      calendar.DateString // inclusive
	EndDate        calendar.DateString // inclusive
	ProfessionalID *uuid.UUID
	PatientID      *uuid.UUID
	Status         AppointmentStatus // empty = any
}
