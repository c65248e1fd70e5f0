package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
)

type AuditService interface {
	Log(ctx context.Context, db *gorm.DB, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// Log records an audit trail entry. Audit failures are logged but never
// bubble up: a missing trail entry must not fail the business operation.
func (s *auditService) Log(ctx context.Context, db *gorm.DB, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, db, auditLog); err != nil {
		s.log.Warnf("Failed to write audit log for action %s: %+v", action, err)
		return err
	}
	return nil
}
