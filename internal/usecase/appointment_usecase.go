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
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrAppointmentAlreadyCanceled = errors.New("appointment is already canceled")
	ErrSlotTaken                  = errors.New("professional already has an appointment at this date and time")
	ErrPatientNotFound            = errors.New("patient not found")
	ErrProfessionalNotFound       = errors.New("professional not found")
	ErrInvalidDateFormat          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat          = errors.New("invalid time format, use HH:MM")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
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

	professional, err := u.professionalRepo.FindByID(ctx, u.db, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	// A non-canceled appointment on the exact same slot for the same
	// professional is a booking conflict.
	existing, err := u.appointmentRepo.FindActiveSlot(ctx, u.db, professional.ID, date, t)
	if err != nil {
		u.log.Warnf("Failed conflict check for professional %s at %s %s: %+v", professional.ID, date, t, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID:      patient.ID,
		PatientName:    patient.FullName,
		ProfessionalID: professional.ID,
		Date:           date,
		Time:           t,
		Specialty:      req.Specialty,
		Status:         entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		u.log.Errorf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id":  appointment.ID.String(),
		"patient_id":      patient.ID.String(),
		"professional_id": professional.ID.String(),
		"date":            string(date),
		"time":            string(t),
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := entity.AppointmentFilter{
		Status: entity.AppointmentStatus(req.Status),
	}

	if req.StartDate != "" {
		start, err := calendar.ParseDate(req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.StartDate = start
	}
	if req.EndDate != "" {
		end, err := calendar.ParseDate(req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.EndDate = end
	}
	if req.ProfessionalID != uuid.Nil {
		filter.ProfessionalID = &req.ProfessionalID
	}
	if req.PatientID != uuid.Nil {
		filter.PatientID = &req.PatientID
	}

	appointments, err := u.appointmentRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Confirm(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.IsCanceled() {
		return ErrAppointmentAlreadyCanceled
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, u.db, id, entity.AppointmentStatusConfirmed); err != nil {
		u.log.Warnf("Failed to confirm appointment %s: %+v", id, err)
		return err
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionAppointmentConfirm, entity.JSON{
		"appointment_id": id.String(),
	})
	return nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.Cancel(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCanceled
	}

	u.auditService.Log(ctx, u.db, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": id.String(),
	})
	return nil
}
