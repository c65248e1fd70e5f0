package converter

import (
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

// ProfessionalToResponse converts a Professional entity to ProfessionalResponse DTO
func ProfessionalToResponse(professional *entity.Professional) *dto.ProfessionalResponse {
	if professional == nil {
		return nil
	}
	return &dto.ProfessionalResponse{
		ID:           professional.ID,
		FullName:     professional.FullName,
		Specialty:    professional.Specialty,
		Registration: professional.Registration,
		Active:       professional.Active,
		CreatedAt:    professional.CreatedAt,
		UpdatedAt:    professional.UpdatedAt,
	}
}

// ProfessionalsToResponses converts a slice of Professional entities to slice of ProfessionalResponse DTOs
func ProfessionalsToResponses(professionals []entity.Professional) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(professionals))
	for i, professional := range professionals {
		resp := ProfessionalToResponse(&professional)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
