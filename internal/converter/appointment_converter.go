package converter

import (
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}
	return &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		PatientName:    appointment.PatientName,
		ProfessionalID: appointment.ProfessionalID,
		Date:           string(appointment.Date),
		Time:           string(appointment.Time),
		Specialty:      appointment.Specialty,
		Status:         string(appointment.Status),
		ReminderSentAt: appointment.ReminderSentAt,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
