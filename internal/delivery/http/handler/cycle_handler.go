package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/internal/usecase"
	"github.com/kaduart/agenda-clinica-service/pkg/response"
	"github.com/kaduart/agenda-clinica-service/pkg/validator"
)

type CycleHandler struct {
	cycleUsecase usecase.CycleUsecase
	validator    *validator.CustomValidator
}

func NewCycleHandler(cycleUsecase usecase.CycleUsecase, validator *validator.CustomValidator) *CycleHandler {
	return &CycleHandler{
		cycleUsecase: cycleUsecase,
		validator:    validator,
	}
}

func (h *CycleHandler) decodeRequest(w http.ResponseWriter, r *http.Request) *dto.GenerateCycleRequest {
	var req dto.GenerateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil
	}
	return &req
}

func (h *CycleHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrProfessionalNotFound:
		response.NotFound(w, "Professional not found")
	case usecase.ErrInvalidCycleStartDate,
		usecase.ErrCyclePatternTooLong,
		usecase.ErrFirstEntryNotPinned,
		service.ErrEmptyPattern,
		service.ErrInvalidPatternEntry:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

// PreviewCycle expands the weekly pattern over the derived one-month window
// without persisting anything.
func (h *CycleHandler) PreviewCycle(w http.ResponseWriter, r *http.Request) {
	req := h.decodeRequest(w, r)
	if req == nil {
		return
	}

	preview, err := h.cycleUsecase.Preview(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Failed to preview cycle")
		return
	}

	response.Success(w, http.StatusOK, "Cycle preview generated successfully", preview)
}

// CommitCycle persists every non-conflicting slot as a scheduled appointment.
func (h *CycleHandler) CommitCycle(w http.ResponseWriter, r *http.Request) {
	req := h.decodeRequest(w, r)
	if req == nil {
		return
	}

	result, err := h.cycleUsecase.Commit(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Failed to commit cycle")
		return
	}

	response.Success(w, http.StatusCreated, "Cycle committed successfully", result)
}
