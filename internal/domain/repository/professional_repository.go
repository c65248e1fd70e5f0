package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

type ProfessionalRepository interface {
	Create(ctx context.Context, db *gorm.DB, professional *entity.Professional) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Professional, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Professional, error)
	Update(ctx context.Context, db *gorm.DB, professional *entity.Professional) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
