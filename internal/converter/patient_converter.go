package converter

import (
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/service"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}
	return &dto.PatientResponse{
		ID:        patient.ID,
		FullName:  patient.FullName,
		Phone:     patient.Phone,
		CPF:       patient.CPF,
		Email:     patient.Email,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DuplicateGroupsToResponses converts duplicate groups to their DTO form,
// preserving member ordering (oldest record first).
func DuplicateGroupsToResponses(groups []service.DuplicateGroup) []dto.DuplicateGroupResponse {
	responses := make([]dto.DuplicateGroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = dto.DuplicateGroupResponse{
			NormalizedName: group.NormalizedName,
			Members:        PatientsToResponses(group.Members),
		}
	}
	return responses
}
