package converter

import (
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

// SlotsToResponses converts generated slots to their DTO form, preserving
// the chronological ordering the generator guarantees.
func SlotsToResponses(slots []calendar.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			Date: string(slot.Date),
			Time: string(slot.Time),
		}
	}
	return responses
}

// SkippedSlotsToResponses converts conflict-skipped slots to their DTO form
func SkippedSlotsToResponses(skipped []service.SkippedSlot) []dto.SkippedSlotResponse {
	responses := make([]dto.SkippedSlotResponse, len(skipped))
	for i, s := range skipped {
		responses[i] = dto.SkippedSlotResponse{
			Date:          string(s.Slot.Date),
			Time:          string(s.Slot.Time),
			Reason:        string(s.Reason),
			AppointmentID: s.AppointmentID,
		}
	}
	return responses
}
