package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	domainRepo "github.com/kaduart/agenda-clinica-service/internal/domain/repository"
)

type preAppointmentRepository struct{}

func NewPreAppointmentRepository() domainRepo.PreAppointmentRepository {
	return &preAppointmentRepository{}
}

func (r *preAppointmentRepository) Create(ctx context.Context, db *gorm.DB, preAppointment *entity.PreAppointment) error {
	return db.WithContext(ctx).Create(preAppointment).Error
}

func (r *preAppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PreAppointment, error) {
	var preAppointment entity.PreAppointment
	err := db.WithContext(ctx).Where("id = ?", id).First(&preAppointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &preAppointment, nil
}

func (r *preAppointmentRepository) ListByStatus(ctx context.Context, db *gorm.DB, status entity.PreAppointmentStatus) ([]entity.PreAppointment, error) {
	var preAppointments []entity.PreAppointment
	query := db.WithContext(ctx).Order("date ASC, time ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&preAppointments).Error; err != nil {
		return nil, err
	}
	return preAppointments, nil
}

func (r *preAppointmentRepository) ReassignPatient(ctx context.Context, db *gorm.DB, oldPatientID, newPatientID uuid.UUID, newName string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.PreAppointment{}).
		Where("patient_id = ?", oldPatientID).
		Updates(map[string]interface{}{
			"patient_id":   newPatientID,
			"patient_name": newName,
		})
	return result.RowsAffected, result.Error
}

func (r *preAppointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.PreAppointmentStatus) error {
	return db.WithContext(ctx).Model(&entity.PreAppointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
