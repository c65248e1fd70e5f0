package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked clinic slot.
//
// PatientName is denormalized for listing and must be rewritten whenever the
// appointment is re-pointed to another patient during a merge; a stale name
// here is a reconciliation bug.
type Appointment struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	PatientName    string              `gorm:"type:varchar(255);not null" json:"patient_name"`
	ProfessionalID uuid.UUID           `gorm:"type:uuid;not null;index" json:"professional_id"`
	Date           calendar.DateString `gorm:"type:date;not null;index" json:"date"`
	Time           calendar.TimeString `gorm:"type:varchar(5);not null" json:"time"`
	Specialty      string              `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	Status         AppointmentStatus   `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	ReminderSentAt *time.Time          `gorm:"type:timestamptz" json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCanceled checks if the appointment is canceled. Canceled appointments
// never count as conflicts for slot generation.
func (a *Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceled
}

// Slot returns the (date, time) pair occupied by this appointment.
func (a *Appointment) Slot() calendar.Slot {
	return calendar.Slot{Date: a.Date, Time: a.Time}
}

// Confirm changes appointment status to confirmed
func (a *Appointment) Confirm() {
	a.Status = AppointmentStatusConfirmed
}

// Cancel changes appointment status to canceled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCanceled
}
