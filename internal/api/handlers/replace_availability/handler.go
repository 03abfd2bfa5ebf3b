package replace_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/availability"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять расписание может только сам ментор"
	msgMentorNotFound     = "ментор не найден, сначала создайте профиль"
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

// Handle PUT /api/v1/mentors/{mentorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("PUT /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /mentors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReplaceAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mentors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Replace(r.Context(), req.ToServiceRequest(mentorID, userID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /mentors/{id}/availability - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("PUT /mentors/{id}/availability - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, availability.ErrInvalidRule):
			h.logger.Warn("PUT /mentors/{id}/availability - Invalid rule: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /mentors/{id}/availability - Failed to replace rules: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /mentors/{id}/availability - Rules replaced: mentor_id=%d, count=%d", mentorID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
