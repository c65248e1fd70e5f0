package converter

import (
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

// PreAppointmentToResponse converts a PreAppointment entity to PreAppointmentResponse DTO
func PreAppointmentToResponse(preAppointment *entity.PreAppointment) *dto.PreAppointmentResponse {
	if preAppointment == nil {
		return nil
	}
	return &dto.PreAppointmentResponse{
		ID:             preAppointment.ID,
		PatientID:      preAppointment.PatientID,
		PatientName:    preAppointment.PatientName,
		ProfessionalID: preAppointment.ProfessionalID,
		Date:           string(preAppointment.Date),
		Time:           string(preAppointment.Time),
		Status:         string(preAppointment.Status),
		Notes:          preAppointment.Notes,
		CreatedAt:      preAppointment.CreatedAt,
		UpdatedAt:      preAppointment.UpdatedAt,
	}
}

// PreAppointmentsToResponses converts a slice of PreAppointment entities to slice of PreAppointmentResponse DTOs
func PreAppointmentsToResponses(preAppointments []entity.PreAppointment) []dto.PreAppointmentResponse {
	responses := make([]dto.PreAppointmentResponse, len(preAppointments))
	for i, preAppointment := range preAppointments {
		resp := PreAppointmentToResponse(&preAppointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
