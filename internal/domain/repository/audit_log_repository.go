package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindByAction(ctx context.Context, db *gorm.DB, action string, limit int) ([]entity.AuditLog, error)
}
