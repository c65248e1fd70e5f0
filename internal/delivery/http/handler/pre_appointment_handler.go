package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/usecase"
	"github.com/kaduart/agenda-clinica-service/pkg/response"
	"github.com/kaduart/agenda-clinica-service/pkg/validator"
)

type PreAppointmentHandler struct {
	preAppointmentUsecase usecase.PreAppointmentUsecase
	validator             *validator.CustomValidator
}

func NewPreAppointmentHandler(preAppointmentUsecase usecase.PreAppointmentUsecase, validator *validator.CustomValidator) *PreAppointmentHandler {
	return &PreAppointmentHandler{
		preAppointmentUsecase: preAppointmentUsecase,
		validator:             validator,
	}
}

func (h *PreAppointmentHandler) CreatePreAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePreAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	preAppointment, err := h.preAppointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create pre-appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Pre-appointment created successfully", preAppointment)
}

func (h *PreAppointmentHandler) ListPreAppointments(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	preAppointments, err := h.preAppointmentUsecase.List(r.Context(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to list pre-appointments")
		return
	}

	response.Success(w, http.StatusOK, "Pre-appointments retrieved successfully", preAppointments)
}

func (h *PreAppointmentHandler) ConfirmPreAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	preAppointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pre-appointment ID", nil)
		return
	}

	appointment, err := h.preAppointmentUsecase.Confirm(r.Context(), preAppointmentID)
	if err != nil {
		switch err {
		case usecase.ErrPreAppointmentNotFound:
			response.NotFound(w, "Pre-appointment not found")
		case usecase.ErrPreAppointmentNotPending:
			response.Conflict(w, "Pre-appointment is not pending")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Professional already has an appointment at this date and time")
		default:
			response.InternalServerError(w, "Failed to confirm pre-appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Pre-appointment confirmed successfully", appointment)
}

func (h *PreAppointmentHandler) RejectPreAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	preAppointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pre-appointment ID", nil)
		return
	}

	if err := h.preAppointmentUsecase.Reject(r.Context(), preAppointmentID); err != nil {
		switch err {
		case usecase.ErrPreAppointmentNotFound:
			response.NotFound(w, "Pre-appointment not found")
		case usecase.ErrPreAppointmentNotPending:
			response.Conflict(w, "Pre-appointment is not pending")
		default:
			response.InternalServerError(w, "Failed to reject pre-appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pre-appointment rejected successfully", nil)
}
