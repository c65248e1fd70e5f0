package handler

import (
	"net/http"
	"strconv"

	"github.com/kaduart/agenda-clinica-service/internal/converter"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/internal/usecase"
	"github.com/kaduart/agenda-clinica-service/pkg/response"
)

// DuplicateHandler exposes a read-only view of duplicate patient groups so
// staff can inspect what a reconciliation run would touch. Merging itself is
// an operator action run from the dedup command.
type DuplicateHandler struct {
	reconcileUsecase usecase.ReconcileUsecase
}

func NewDuplicateHandler(reconcileUsecase usecase.ReconcileUsecase) *DuplicateHandler {
	return &DuplicateHandler{
		reconcileUsecase: reconcileUsecase,
	}
}

func (h *DuplicateHandler) ListDuplicateGroups(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	nameFilter := query.Get("name")

	var matcher service.NameMatcher
	if query.Get("fuzzy") == "true" {
		maxDistance := 1
		if raw := query.Get("max_distance"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				response.Error(w, http.StatusBadRequest, "Invalid max_distance", nil)
				return
			}
			maxDistance = parsed
		}
		matcher = service.LevenshteinMatcher{MaxDistance: maxDistance}
	}

	groups, err := h.reconcileUsecase.FindDuplicates(r.Context(), nameFilter, matcher)
	if err != nil {
		response.InternalServerError(w, "Failed to find duplicate groups")
		return
	}

	response.Success(w, http.StatusOK, "Duplicate groups retrieved successfully", &dto.DuplicateGroupListResponse{
		Groups: converter.DuplicateGroupsToResponses(groups),
		Total:  len(groups),
	})
}
