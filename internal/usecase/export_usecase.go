package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
	"github.com/kaduart/agenda-clinica-service/internal/integrations/crm"
	"github.com/kaduart/agenda-clinica-service/internal/service"
)

const (
	ExportKindPatient     = "patient"
	ExportKindAppointment = "appointment"
)

// ExportStateStore tracks which records were already pushed to the CRM so
// interrupted batches resume instead of re-sending everything.
type ExportStateStore interface {
	IsExported(ctx context.Context, kind string, id uuid.UUID) bool
	MarkExported(ctx context.Context, kind string, id uuid.UUID)
}

// ExportFailure records one record the CRM rejected. The batch keeps going.
type ExportFailure struct {
	Kind   string
	ID     uuid.UUID
	Reason string
}

type ExportResult struct {
	Exported int
	Skipped  int
	Failed   []ExportFailure
}

func (r *ExportResult) HasFailures() bool {
	return len(r.Failed) > 0
}

type ExportUsecase interface {
	// RunExport pushes every patient and appointment not yet marked as
	// exported to the CRM. Individual failures never abort the batch.
	RunExport(ctx context.Context) (*ExportResult, error)
}

type exportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	crmClient       *crm.Client
	auditService    service.AuditService
	stateStore      ExportStateStore
}

func NewExportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	crmClient *crm.Client,
	auditService service.AuditService,
	stateStore ExportStateStore,
) ExportUsecase {
	return &exportUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		crmClient:       crmClient,
		auditService:    auditService,
		stateStore:      stateStore,
	}
}

func (u *exportUsecase) RunExport(ctx context.Context) (*ExportResult, error) {
	result := &ExportResult{}

	patients, err := u.patientRepo.SearchByName(ctx, u.db, "")
	if err != nil {
		u.log.Errorf("Failed to load patients for export: %+v", err)
		return nil, err
	}

	for _, patient := range patients {
		if u.stateStore != nil && u.stateStore.IsExported(ctx, ExportKindPatient, patient.ID) {
			result.Skipped++
			continue
		}

		payload := crm.ContactPayload{
			ExternalID: patient.ID.String(),
			FullName:   patient.FullName,
			Phone:      patient.Phone,
			Email:      patient.Email,
			Document:   patient.CPF,
		}
		if err := u.crmClient.UpsertContact(ctx, payload); err != nil {
			u.log.Warnf("Failed to export patient %s: %+v", patient.ID, err)
			result.Failed = append(result.Failed, ExportFailure{
				Kind:   ExportKindPatient,
				ID:     patient.ID,
				Reason: err.Error(),
			})
			continue
		}

		if u.stateStore != nil {
			u.stateStore.MarkExported(ctx, ExportKindPatient, patient.ID)
		}
		result.Exported++
	}

	appointments, err := u.appointmentRepo.List(ctx, u.db, entity.AppointmentFilter{})
	if err != nil {
		u.log.Errorf("Failed to load appointments for export: %+v", err)
		return nil, err
	}

	for _, appointment := range appointments {
		if u.stateStore != nil && u.stateStore.IsExported(ctx, ExportKindAppointment, appointment.ID) {
			result.Skipped++
			continue
		}

		payload := crm.EventPayload{
			ExternalID:        appointment.ID.String(),
			ContactExternalID: appointment.PatientID.String(),
			Date:              string(appointment.Date),
			Time:              string(appointment.Time),
			Specialty:         appointment.Specialty,
			Status:            string(appointment.Status),
		}
		if err := u.crmClient.UpsertEvent(ctx, payload); err != nil {
			u.log.Warnf("Failed to export appointment %s: %+v", appointment.ID, err)
			result.Failed = append(result.Failed, ExportFailure{
				Kind:   ExportKindAppointment,
				ID:     appointment.ID,
				Reason: err.Error(),
			})
			continue
		}

		if u.stateStore != nil {
			u.stateStore.MarkExported(ctx, ExportKindAppointment, appointment.ID)
		}
		result.Exported++
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionCRMExport, entity.JSON{
		"exported": result.Exported,
		"skipped":  result.Skipped,
		"failed":   len(result.Failed),
	})

	u.log.Infof("CRM export finished: %d exported, %d skipped, %d failed",
		result.Exported, result.Skipped, len(result.Failed))

	return result, nil
}
