package dto

import "github.com/google/uuid"

// Request DTOs

// CyclePatternEntry is one weekly recurrence rule: a weekday (0=Sunday ..
// 6=Saturday) and a clock time.
type CyclePatternEntry struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	Time      string `json:"time" validate:"required,clocktime"`
}

// GenerateCycleRequest describes a recurring treatment cycle. The end date
// is always derived server-side as one calendar month after the start date
// and is never accepted from the client.
type GenerateCycleRequest struct {
	PatientID      uuid.UUID           `json:"patient_id" validate:"required"`
	ProfessionalID uuid.UUID           `json:"professional_id" validate:"required"`
	StartDate      string              `json:"start_date" validate:"required,dateiso"`
	Pattern        []CyclePatternEntry `json:"pattern" validate:"required,min=1,max=3,dive"`
	Specialty      string              `json:"specialty" validate:"omitempty,max=100"`
	IncludeEndDate bool                `json:"include_end_date"`
	Strict         bool                `json:"strict"`
}

// Response DTOs

type SlotResponse struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type SkippedSlotResponse struct {
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Reason        string    `json:"reason"`
	AppointmentID uuid.UUID `json:"appointment_id"`
}

type CyclePreviewResponse struct {
	EndDate      string                `json:"end_date"`
	Slots        []SlotResponse        `json:"slots"`
	Skipped      []SkippedSlotResponse `json:"skipped"`
	TotalSlots   int                   `json:"total_slots"`
	TotalSkipped int                   `json:"total_skipped"`
}

type CycleCommitResponse struct {
	EndDate      string                `json:"end_date"`
	CreatedIDs   []uuid.UUID           `json:"created_ids"`
	Skipped      []SkippedSlotResponse `json:"skipped"`
	CreatedCount int                   `json:"created_count"`
	SkippedCount int                   `json:"skipped_count"`
}
