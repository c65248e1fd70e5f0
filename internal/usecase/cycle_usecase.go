package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/converter"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

var (
	ErrInvalidCycleStartDate = errors.New("invalid cycle start date, use YYYY-MM-DD")
	ErrCyclePatternTooLong   = errors.New("cycle pattern supports at most 3 weekly entries")
	ErrFirstEntryNotPinned   = errors.New("first pattern entry must fall on the start date's day of week")
)

type CycleUsecase interface {
	// Preview expands the cycle without persisting anything, so the UI can
	// show the slots-to-be-created count before commit.
	Preview(ctx context.Context, req *dto.GenerateCycleRequest) (*dto.CyclePreviewResponse, error)
	// Commit persists every non-conflicting slot as a scheduled appointment
	// and reports created vs. skipped counts.
	Commit(ctx context.Context, req *dto.GenerateCycleRequest) (*dto.CycleCommitResponse, error)
}

type cycleUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewCycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) CycleUsecase {
	return &cycleUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

// plan validates the request, derives the window, expands the pattern and
// applies the conflict policy. Shared by Preview and Commit so both always
// agree on the same slot set.
func (u *cycleUsecase) plan(ctx context.Context, req *dto.GenerateCycleRequest) (*service.CyclePlan, calendar.DateString, calendar.DateString, error) {
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return nil, "", "", ErrInvalidCycleStartDate
	}

	// End date is never user-editable: always start + 1 calendar month,
	// clipped to the destination month's last day.
	end := service.DeriveEndDate(start)

	if len(req.Pattern) > 3 {
		return nil, "", "", ErrCyclePatternTooLong
	}

	pattern := make([]calendar.WeeklyPatternEntry, 0, len(req.Pattern))
	for _, entry := range req.Pattern {
		pattern = append(pattern, calendar.WeeklyPatternEntry{
			DayOfWeek: entry.DayOfWeek,
			Time:      calendar.TimeString(entry.Time),
		})
	}

	// Entry 0 is pinned to the start date's weekday.
	if len(pattern) > 0 && pattern[0].Valid() && pattern[0].DayOfWeek != int(start.Weekday()) {
		return nil, "", "", ErrFirstEntryNotPinned
	}

	var slots []calendar.Slot
	if req.Strict {
		slots, err = service.GenerateSlotsStrict(start, end, pattern, req.IncludeEndDate)
		if err != nil {
			return nil, "", "", err
		}
	} else {
		slots = service.GenerateSlots(start, end, pattern, req.IncludeEndDate)
	}

	existing, err := u.appointmentRepo.FindActiveByProfessionalBetween(ctx, u.db, req.ProfessionalID, start, end)
	if err != nil {
		u.log.Warnf("Failed to load appointments for conflict check (professional=%s): %+v", req.ProfessionalID, err)
		return nil, "", "", err
	}

	plan := service.PlanCycle(slots, existing, req.ProfessionalID)
	return &plan, start, end, nil
}

func (u *cycleUsecase) Preview(ctx context.Context, req *dto.GenerateCycleRequest) (*dto.CyclePreviewResponse, error) {
	plan, _, end, err := u.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	return &dto.CyclePreviewResponse{
		EndDate:      string(end),
		Slots:        converter.SlotsToResponses(plan.Accepted),
		Skipped:      converter.SkippedSlotsToResponses(plan.Skipped),
		TotalSlots:   len(plan.Accepted),
		TotalSkipped: len(plan.Skipped),
	}, nil
}

func (u *cycleUsecase) Commit(ctx context.Context, req *dto.GenerateCycleRequest) (*dto.CycleCommitResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	professional, err := u.professionalRepo.FindByID(ctx, u.db, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	plan, start, end, err := u.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	created := make([]uuid.UUID, 0, len(plan.Accepted))
	for _, slot := range plan.Accepted {
		appointment := &entity.Appointment{
			PatientID:      patient.ID,
			PatientName:    patient.FullName,
			ProfessionalID: professional.ID,
			Date:           slot.Date,
			Time:           slot.Time,
			Specialty:      req.Specialty,
			Status:         entity.AppointmentStatusScheduled,
		}
		if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
			u.log.Errorf("Failed to persist cycle slot %s %s (patient=%s): %+v",
				slot.Date, slot.Time, patient.ID, err)
			return nil, err
		}
		created = append(created, appointment.ID)
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionCycleCommit, entity.JSON{
		"patient_id":      patient.ID.String(),
		"professional_id": professional.ID.String(),
		"start_date":      string(start),
		"end_date":        string(end),
		"created":         len(created),
		"skipped":         len(plan.Skipped),
	})

	u.log.Infof("Cycle committed for patient %s: %d created, %d skipped for conflict",
		patient.ID, len(created), len(plan.Skipped))

	return &dto.CycleCommitResponse{
		EndDate:      string(end),
		CreatedIDs:   created,
		Skipped:      converter.SkippedSlotsToResponses(plan.Skipped),
		CreatedCount: len(created),
		SkippedCount: len(plan.Skipped),
	}, nil
}
