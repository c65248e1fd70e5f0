package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

// ReminderService records reminder dispatches for next-day appointments.
// Actual delivery (SMS/WhatsApp) is handled by the external notification
// integration; this service only decides who is due and stamps the record
// so an appointment is never reminded twice.
type ReminderService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    AuditService
}

func NewReminderService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService AuditService,
) *ReminderService {
	return &ReminderService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// SendDailyReminders processes every appointment scheduled for tomorrow that
// has no reminder recorded yet. Per-appointment failures are logged and
// skipped; the run reports how many reminders it dispatched.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	tomorrow := calendar.NewDateString(time.Now().AddDate(0, 0, 1))

	due, err := s.appointmentRepo.FindDueForReminder(ctx, s.db, tomorrow)
	if err != nil {
		s.log.Errorf("Failed to list appointments due for reminder on %s: %+v", tomorrow, err)
		return 0, err
	}

	sent := 0
	for _, appointment := range due {
		if err := s.appointmentRepo.MarkReminderSent(ctx, s.db, appointment.ID); err != nil {
			s.log.Warnf("Failed to mark reminder sent for appointment %s: %+v", appointment.ID, err)
			continue
		}

		s.auditService.Log(ctx, s.db, entity.AuditActionReminderSent, entity.JSON{
			"appointment_id": appointment.ID.String(),
			"patient_name":   appointment.PatientName,
			"date":           string(appointment.Date),
			"time":           string(appointment.Time),
		})
		sent++
	}

	s.log.Infof("Reminder run for %s complete: %d sent, %d due", tomorrow, sent, len(due))
	return sent, nil
}
