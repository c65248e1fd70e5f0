package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	domainRepo "github.com/kaduart/agenda-clinica-service/internal/domain/repository"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, db *gorm.DB, nameFilter string) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := db.WithContext(ctx).Order("created_at ASC")
	if nameFilter != "" {
		query = query.Where("full_name ILIKE ?", "%"+nameFilter+"%")
	}
	if err := query.Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	// Deleting an already-deleted row affects zero rows and returns no
	// error, which is exactly the idempotent behavior the reconciliation
	// batch relies on.
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{}).Error
}
