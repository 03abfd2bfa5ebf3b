package get_mentor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMentorNotFound  = "ментор не найден"
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

// Handle GET /api/v1/mentors/{mentorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id} - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	mentor, err := h.service.Get(r.Context(), mentorID)
	if err != nil {
		switch {
		case errors.Is(err, mentors.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id} - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		default:
			h.logger.Error("GET /mentors/{id} - Failed to get mentor: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, mentor)
}
