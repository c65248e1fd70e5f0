package entity

import (
	"time"

	"github.com/google/uuid"
)

// Professional represents a clinic professional (doctor, therapist).
type Professional struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialty    string    `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	Registration string    `gorm:"type:varchar(50)" json:"registration,omitempty"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:ProfessionalID" json:"appointments,omitempty"`
}

func (Professional) TableName() string {
	return "professionals"
}
