package get_mentors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors"
)

const (
	msgInvalidQuery = "некорректные параметры page, pageSize, status или availableOnly"
)

type Handler struct {
	service MentorService
	logger  Logger
}

func NewHandler(service MentorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors
// Query params: page (>=1), pageSize (1..100), status (optional), availableOnly (bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /mentors - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, mentors.ErrInvalidInput):
			h.logger.Warn("GET /mentors - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /mentors - Failed to list mentors: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
