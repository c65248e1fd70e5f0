package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	// SearchByName matches the name filter case-insensitively (ILIKE).
	// An empty filter returns all patients.
	SearchByName(ctx context.Context, db *gorm.DB, nameFilter string) ([]entity.Patient, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	// Delete removes the patient row. Deleting an id that no longer exists
	// is not an error (idempotent re-runs of the reconciliation batch).
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
