package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
	"github.com/kaduart/agenda-clinica-service/internal/service"
)

// Merge step names used in logs and failure reports.
const (
	StepMigrateAppointments    = "migrate_appointments"
	StepMigratePreAppointments = "migrate_pre_appointments"
	StepDeleteDuplicate        = "delete_duplicate"
)

// MergeFailure describes a duplicate left untouched for manual retry.
type MergeFailure struct {
	DuplicateID uuid.UUID `json:"duplicate_id"`
	CanonicalID uuid.UUID `json:"canonical_id"`
	Step        string    `json:"step"`
	Reason      string    `json:"reason"`
}

// BatchResult summarizes a reconciliation run. The process exit code is
// derived from it: partial failures must be visible to operators, not only
// to log readers.
type BatchResult struct {
	Groups  int            `json:"groups"`
	Merged  int            `json:"merged"`
	Skipped int            `json:"skipped"`
	Failed  []MergeFailure `json:"failed,omitempty"`
}

func (r *BatchResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// BatchOptions controls a reconciliation run.
type BatchOptions struct {
	// NameFilter narrows candidate discovery (ILIKE on full name).
	NameFilter string
	Strategy   service.CanonicalStrategy
	// Matcher selects the grouping policy; nil means exact normalized-name
	// equality.
	Matcher service.NameMatcher
	// DryRun reports the groups and planned merges without mutating anything.
	DryRun bool
}

// MergeStateStore is the persisted "already merged" record keyed by
// duplicate id. Optional: a nil store just means every duplicate is
// re-checked against the database.
type MergeStateStore interface {
	IsMerged(ctx context.Context, duplicateID uuid.UUID) bool
	MarkMerged(ctx context.Context, duplicateID, canonicalID uuid.UUID)
}

type ReconcileUsecase interface {
	FindDuplicates(ctx context.Context, nameFilter string, matcher service.NameMatcher) ([]service.DuplicateGroup, error)
	MergeGroup(ctx context.Context, group service.DuplicateGroup, strategy service.CanonicalStrategy) (merged int, skipped int, failures []MergeFailure)
	RunBatch(ctx context.Context, opts BatchOptions) (*BatchResult, error)
}

type reconcileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientRepo        repository.PatientRepository
	appointmentRepo    repository.AppointmentRepository
	preAppointmentRepo repository.PreAppointmentRepository
	auditService       service.AuditService
	stateStore         MergeStateStore
}

func NewReconcileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	preAppointmentRepo repository.PreAppointmentRepository,
	auditService service.AuditService,
	stateStore MergeStateStore,
) ReconcileUsecase {
	return &reconcileUsecase{
		db:                 db,
		log:                log,
		patientRepo:        patientRepo,
		appointmentRepo:    appointmentRepo,
		preAppointmentRepo: preAppointmentRepo,
		auditService:       auditService,
		stateStore:         stateStore,
	}
}

// FindDuplicates runs the discovery and grouping phases: fetch candidate
// patients, group them by normalized name (optionally fuzzy), keep only
// groups with more than one member.
func (u *reconcileUsecase) FindDuplicates(ctx context.Context, nameFilter string, matcher service.NameMatcher) ([]service.DuplicateGroup, error) {
	patients, err := u.patientRepo.SearchByName(ctx, u.db, nameFilter)
	if err != nil {
		u.log.Errorf("Failed to search patients (filter=%q): %+v", nameFilter, err)
		return nil, err
	}

	groups := service.FindDuplicateGroups(patients, matcher)
	u.log.Infof("Duplicate discovery (filter=%q): %d patients, %d groups", nameFilter, len(patients), len(groups))
	return groups, nil
}

// MergeGroup consolidates one duplicate group into its canonical record.
// Every non-canonical member goes through mergeOne sequentially; a failure
// on one duplicate never blocks the others.
func (u *reconcileUsecase) MergeGroup(ctx context.Context, group service.DuplicateGroup, strategy service.CanonicalStrategy) (int, int, []MergeFailure) {
	if len(group.Members) == 0 {
		return 0, 0, nil
	}

	canonical := service.ChooseCanonical(group, strategy)
	merged, skipped := 0, 0
	var failures []MergeFailure

	for _, member := range group.Members {
		if member.ID == canonical.ID {
			continue
		}

		if u.stateStore != nil && u.stateStore.IsMerged(ctx, member.ID) {
			u.log.Infof("Duplicate %s already merged, skipping", member.ID)
			skipped++
			continue
		}

		if failure := u.mergeOne(ctx, canonical, member); failure != nil {
			failures = append(failures, *failure)
			continue
		}
		merged++
	}

	return merged, skipped, failures
}

// mergeOne migrates all records depending on the duplicate to the canonical
// patient, then deletes the duplicate. The ordering is the safety invariant
// of the whole subsystem: a duplicate is never deleted while anything still
// references it. A failed delete after successful migration is benign (the
// row may already be gone from a previous run).
func (u *reconcileUsecase) mergeOne(ctx context.Context, canonical, duplicate entity.Patient) *MergeFailure {
	// Step 1: re-point appointments and refresh their denormalized name.
	moved, err := u.appointmentRepo.ReassignPatient(ctx, u.db, duplicate.ID, canonical.ID, canonical.FullName)
	if err != nil {
		u.log.Errorf("Merge aborted at %s (duplicate=%s, canonical=%s): %+v",
			StepMigrateAppointments, duplicate.ID, canonical.ID, err)
		return &MergeFailure{
			DuplicateID: duplicate.ID,
			CanonicalID: canonical.ID,
			Step:        StepMigrateAppointments,
			Reason:      err.Error(),
		}
	}

	// Step 2: same for tentative bookings.
	movedPre, err := u.preAppointmentRepo.ReassignPatient(ctx, u.db, duplicate.ID, canonical.ID, canonical.FullName)
	if err != nil {
		u.log.Errorf("Merge aborted at %s (duplicate=%s, canonical=%s): %+v",
			StepMigratePreAppointments, duplicate.ID, canonical.ID, err)
		return &MergeFailure{
			DuplicateID: duplicate.ID,
			CanonicalID: canonical.ID,
			Step:        StepMigratePreAppointments,
			Reason:      err.Error(),
		}
	}

	// Step 3: only now is the duplicate safe to delete.
	if err := u.patientRepo.Delete(ctx, u.db, duplicate.ID); err != nil {
		// Dependents are already migrated; a delete failure leaves no
		// orphan and the row will be retried or found gone next run.
		u.log.Warnf("Delete of duplicate %s failed after migration (canonical=%s): %+v",
			duplicate.ID, canonical.ID, err)
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionPatientMerge, entity.JSON{
		"duplicate_id":     duplicate.ID.String(),
		"canonical_id":     canonical.ID.String(),
		"canonical_name":   canonical.FullName,
		"appointments":     moved,
		"pre_appointments": movedPre,
	})

	if u.stateStore != nil {
		u.stateStore.MarkMerged(ctx, duplicate.ID, canonical.ID)
	}

	u.log.Infof("Merged duplicate %s into %s (%d appointments, %d pre-appointments)",
		duplicate.ID, canonical.ID, moved, movedPre)
	return nil
}

// RunBatch executes the three phases (discovery, grouping, migrate-and-
// delete) over every actionable group. Duplicates are processed strictly
// sequentially: one in-flight mutation at a time, so the migrate-before-
// delete ordering can never interleave with another merge.
func (u *reconcileUsecase) RunBatch(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	groups, err := u.FindDuplicates(ctx, opts.NameFilter, opts.Matcher)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Groups: len(groups)}

	for _, group := range groups {
		if opts.DryRun {
			canonical := service.ChooseCanonical(group, opts.Strategy)
			u.log.Infof("[dry-run] group %q: canonical=%s, would merge %d duplicates",
				group.NormalizedName, canonical.ID, len(group.Members)-1)
			continue
		}

		merged, skipped, failures := u.MergeGroup(ctx, group, opts.Strategy)
		result.Merged += merged
		result.Skipped += skipped
		result.Failed = append(result.Failed, failures...)
	}

	u.log.Infof("Reconciliation batch complete: %d groups, %d merged, %d skipped, %d failed",
		result.Groups, result.Merged, result.Skipped, len(result.Failed))
	return result, nil
}
