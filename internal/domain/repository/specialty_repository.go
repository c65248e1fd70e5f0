package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

type SpecialtyRepository interface {
	Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Specialty, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error)
	Update(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	Delete(ctx context.Context, db *gorm.DB, id int) error
}
