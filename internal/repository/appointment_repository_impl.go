package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	domainRepo "github.com/kaduart/agenda-clinica-service/internal/domain/repository"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Preload("Professional").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.WithContext(ctx).Order("date ASC, time ASC")

	if filter.StartDate != "" {
		query = query.Where("date >= ?", string(filter.StartDate))
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", string(filter.EndDate))
	}
	if filter.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveSlot(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, date calendar.DateString, t calendar.TimeString) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Where("professional_id = ? AND date = ? AND time = ? AND status != ?",
			professionalID, string(date), string(t), entity.AppointmentStatusCanceled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveByProfessionalBetween(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, start, end calendar.DateString) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("professional_id = ? AND date >= ? AND date <= ? AND status != ?",
			professionalID, string(start), string(end), entity.AppointmentStatusCanceled).
		Order("date ASC, time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) ReassignPatient(ctx context.Context, db *gorm.DB, oldPatientID, newPatientID uuid.UUID, newName string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("patient_id = ?", oldPatientID).
		Updates(map[string]interface{}{
			"patient_id":   newPatientID,
			"patient_name": newName,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCanceled).
		Update("status", entity.AppointmentStatusCanceled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	return db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) FindDueForReminder(ctx context.Context, db *gorm.DB, date calendar.DateString) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("date = ? AND status != ? AND reminder_sent_at IS NULL",
			string(date), entity.AppointmentStatusCanceled).
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) MarkReminderSent(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	now := time.Now()
	return db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent_at", &now).Error
}
