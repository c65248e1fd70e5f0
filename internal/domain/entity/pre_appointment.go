package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

// PreAppointmentStatus represents the status of a tentative booking
type PreAppointmentStatus string

const (
	PreAppointmentStatusPending   PreAppointmentStatus = "pending"
	PreAppointmentStatusConfirmed PreAppointmentStatus = "confirmed"
	PreAppointmentStatusRejected  PreAppointmentStatus = "rejected"
)

// PreAppointment is a tentative booking awaiting staff confirmation before
// becoming a real appointment. Like Appointment it carries a denormalized
// patient name that must follow patient merges.
type PreAppointment struct {
	ID             uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"patient_id"`
	PatientName    string               `gorm:"type:varchar(255);not null" json:"patient_name"`
	ProfessionalID uuid.UUID            `gorm:"type:uuid;not null;index" json:"professional_id"`
	Date           calendar.DateString  `gorm:"type:date;not null;index" json:"date"`
	Time           calendar.TimeString  `gorm:"type:varchar(5);not null" json:"time"`
	Status         PreAppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes          string               `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (PreAppointment) TableName() string {
	return "pre_appointments"
}

// IsPending checks if the pre-appointment still awaits confirmation
func (p *PreAppointment) IsPending() bool {
	return p.Status == PreAppointmentStatusPending
}
