package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	List(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveSlot returns the non-canceled appointment occupying the exact
	// (professional, date, time) slot, or nil when the slot is free.
	FindActiveSlot(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, date calendar.DateString, t calendar.TimeString) (*entity.Appointment, error)
	// FindActiveByProfessionalBetween lists non-canceled appointments for the
	// professional within the inclusive date window (conflict checks for
	// cycle generation).
	FindActiveByProfessionalBetween(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, start, end calendar.DateString) ([]entity.Appointment, error)
	// ReassignPatient re-points every appointment referencing oldPatientID to
	// newPatientID and rewrites the denormalized patient name. Returns the
	// number of rows touched.
	ReassignPatient(ctx context.Context, db *gorm.DB, oldPatientID, newPatientID uuid.UUID, newName string) (int64, error)
	// Cancel atomically cancels an appointment ONLY if it's not already
	// canceled. Returns affected rows: 1 = success, 0 = already canceled.
	Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error
	// FindDueForReminder lists non-canceled appointments on the given date
	// that have not had a reminder recorded yet.
	FindDueForReminder(ctx context.Context, db *gorm.DB, date calendar.DateString) ([]entity.Appointment, error)
	MarkReminderSent(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
