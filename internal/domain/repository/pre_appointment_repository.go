package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

type PreAppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, preAppointment *entity.PreAppointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PreAppointment, error)
	ListByStatus(ctx context.Context, db *gorm.DB, status entity.PreAppointmentStatus) ([]entity.PreAppointment, error)
	// ReassignPatient mirrors AppointmentRepository.ReassignPatient for
	// tentative bookings.
	ReassignPatient(ctx context.Context, db *gorm.DB, oldPatientID, newPatientID uuid.UUID, newName string) (int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.PreAppointmentStatus) error
}
