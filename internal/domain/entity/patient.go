package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient record created by the booking flow.
// CreatedAt doubles as the seniority tiebreak during deduplication:
// the earliest-created record in a duplicate group survives by default.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName  string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	CPF       string    `gorm:"type:char(11);index" json:"cpf,omitempty"`
	Email     string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsComplete reports whether the record carries the contact fields that make
// it a candidate for the most-complete canonical selection policy.
func (p *Patient) IsComplete() bool {
	return p.Phone != "" && p.CPF != ""
}
