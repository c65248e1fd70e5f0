package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefixes for reconciliation state
	mergedKeyPrefix   = "reconcile:merged:"
	exportedKeyPrefix = "crm:exported:"
)

// ReconcileStateService persists reconciliation progress in Redis, keyed by
// record id, so that state survives process restarts and concurrent batch
// instances stay consistent. It replaces the old process-memory cache of
// "already merged/exported" ids.
//
// The store is advisory: a missing key only means the batch re-checks the
// backing database, which remains the sole source of truth.
type ReconcileStateService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewReconcileStateService(redisClient *redis.Client, log *logrus.Logger) *ReconcileStateService {
	return &ReconcileStateService{
		redisClient: redisClient,
		log:         log,
	}
}

// IsMerged reports whether the duplicate id was already consolidated.
// Lookup errors degrade to "not merged" so the batch falls back to the
// database instead of aborting.
func (s *ReconcileStateService) IsMerged(ctx context.Context, duplicateID uuid.UUID) bool {
	n, err := s.redisClient.Exists(ctx, mergedKeyPrefix+duplicateID.String()).Result()
	if err != nil {
		s.log.Warnf("Failed to check merge state for %s: %+v", duplicateID, err)
		return false
	}
	return n > 0
}

// MarkMerged records that duplicateID was consolidated into canonicalID.
func (s *ReconcileStateService) MarkMerged(ctx context.Context, duplicateID, canonicalID uuid.UUID) {
	key := mergedKeyPrefix + duplicateID.String()
	if err := s.redisClient.Set(ctx, key, canonicalID.String(), 0).Err(); err != nil {
		s.log.Warnf("Failed to persist merge state for %s -> %s: %+v", duplicateID, canonicalID, err)
	}
}

// IsExported reports whether the record of the given kind was already pushed
// to the CRM.
func (s *ReconcileStateService) IsExported(ctx context.Context, kind string, id uuid.UUID) bool {
	n, err := s.redisClient.Exists(ctx, exportedKeyPrefix+kind+":"+id.String()).Result()
	if err != nil {
		s.log.Warnf("Failed to check export state for %s %s: %+v", kind, id, err)
		return false
	}
	return n > 0
}

// MarkExported records a successful CRM export for the record.
func (s *ReconcileStateService) MarkExported(ctx context.Context, kind string, id uuid.UUID) {
	key := exportedKeyPrefix + kind + ":" + id.String()
	if err := s.redisClient.Set(ctx, key, "1", 0).Err(); err != nil {
		s.log.Warnf("Failed to persist export state for %s %s: %+v", kind, id, err)
	}
}
