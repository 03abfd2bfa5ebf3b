package upsert_mentor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять профиль может только сам ментор"
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

// Handle PUT /api/v1/mentors/{mentorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("PUT /mentors/{id} - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /mentors/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertMentorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mentors/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	mentor, err := h.service.Upsert(r.Context(), req.ToServiceRequest(mentorID, userID))
	if err != nil {
		switch {
		case errors.Is(err, mentors.ErrAccessDenied):
			h.logger.Warn("PUT /mentors/{id} - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, mentors.ErrInvalidInput):
			h.logger.Warn("PUT /mentors/{id} - Validation failed: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /mentors/{id} - Failed to save mentor: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /mentors/{id} - Mentor saved: mentor_id=%d", mentorID)
	handlers.RespondJSON(w, http.StatusOK, mentor)
}
