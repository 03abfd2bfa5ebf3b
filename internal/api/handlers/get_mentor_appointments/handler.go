package get_mentor_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/appointments"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidQuery    = "некорректные параметры page, pageSize или status"
	msgForbidden       = "список встреч доступен только самому ментору"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/appointments
// Query params: page (>=1), pageSize (1..100), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/appointments - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /mentors/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(r, mentorID, userID)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListByMentor(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /mentors/{id}/appointments - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /mentors/{id}/appointments - Failed to list: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
