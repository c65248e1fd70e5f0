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
	ErrPreAppointmentNotFound   = errors.New("pre-appointment not found")
	ErrPreAppointmentNotPending = errors.New("pre-appointment is not pending")
)

type PreAppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreatePreAppointmentRequest) (*dto.PreAppointmentResponse, error)
	List(ctx context.Context, status string) (*dto.PreAppointmentListResponse, error)
	// Confirm promotes a pending pre-appointment into a real scheduled
	// appointment, subject to the same conflict policy as direct booking.
	Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Reject(ctx context.Context, id uuid.UUID) error
}

type preAppointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	preAppointmentRepo repository.PreAppointmentRepository
	appointmentRepo    repository.AppointmentRepository
	patientRepo        repository.PatientRepository
	auditService       service.AuditService
}

func NewPreAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	preAppointmentRepo repository.PreAppointmentRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PreAppointmentUsecase {
	return &preAppointmentUsecase{
		db:                 db,
		log:                log,
		preAppointmentRepo: preAppointmentRepo,
		appointmentRepo:    appointmentRepo,
		patientRepo:        patientRepo,
		auditService:       auditService,
	}
}

func (u *preAppointmentUsecase) Create(ctx context.Context, req *dto.CreatePreAppointmentRequest) (*dto.PreAppointmentResponse, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	t, err := calendar.ParseTime(req.Time)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	preAppointment := &entity.PreAppointment{
		PatientID:      patient.ID,
		PatientName:    patient.FullName,
		ProfessionalID: req.ProfessionalID,
		Date:           date,
		Time:           t,
		Status:         entity.PreAppointmentStatusPending,
		Notes:          req.Notes,
	}

	if err := u.preAppointmentRepo.Create(ctx, u.db, preAppointment); err != nil {
		u.log.Errorf("Failed to create pre-appointment: %+v", err)
		return nil, err
	}

	return converter.PreAppointmentToResponse(preAppointment), nil
}

func (u *preAppointmentUsecase) List(ctx context.Context, status string) (*dto.PreAppointmentListResponse, error) {
	preAppointments, err := u.preAppointmentRepo.ListByStatus(ctx, u.db, entity.PreAppointmentStatus(status))
	if err != nil {
		u.log.Warnf("Failed to list pre-appointments: %+v", err)
		return nil, err
	}

	return &dto.PreAppointmentListResponse{
		PreAppointments: converter.PreAppointmentsToResponses(preAppointments),
		Total:           len(preAppointments),
	}, nil
}

func (u *preAppointmentUsecase) Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	preAppointment, err := u.preAppointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find pre-appointment %s: %+v", id, err)
		return nil, err
	}
	if preAppointment == nil {
		return nil, ErrPreAppointmentNotFound
	}
	if !preAppointment.IsPending() {
		return nil, ErrPreAppointmentNotPending
	}

	existing, err := u.appointmentRepo.FindActiveSlot(ctx, u.db, preAppointment.ProfessionalID, preAppointment.Date, preAppointment.Time)
	if err != nil {
		u.log.Warnf("Failed conflict check for pre-appointment %s: %+v", id, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID:      preAppointment.PatientID,
		PatientName:    preAppointment.PatientName,
		ProfessionalID: preAppointment.ProfessionalID,
		Date:           preAppointment.Date,
		Time:           preAppointment.Time,
		Status:         entity.AppointmentStatusScheduled,
	}
	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Errorf("Failed to promote pre-appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.preAppointmentRepo.UpdateStatus(ctx, tx, id, entity.PreAppointmentStatusConfirmed); err != nil {
		u.log.Errorf("Failed to mark pre-appointment %s confirmed: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit pre-appointment promotion %s: %+v", id, err)
		return nil, err
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionAppointmentConfirm, entity.JSON{
		"pre_appointment_id": id.String(),
		"appointment_id":     appointment.ID.String(),
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *preAppointmentUsecase) Reject(ctx context.Context, id uuid.UUID) error {
	preAppointment, err := u.preAppointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find pre-appointment %s: %+v", id, err)
		return err
	}
	if preAppointment == nil {
		return ErrPreAppointmentNotFound
	}
	if !preAppointment.IsPending() {
		return ErrPreAppointmentNotPending
	}

	return u.preAppointmentRepo.UpdateStatus(ctx, u.db, id, entity.PreAppointmentStatusRejected)
}
