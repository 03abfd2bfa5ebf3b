package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/availability"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMentorNotFound  = "ментор не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.List(r.Context(), mentorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/availability - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		default:
			h.logger.Error("GET /mentors/{id}/availability - Failed to list rules: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
