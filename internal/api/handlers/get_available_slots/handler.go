package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-MentorBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность встречи"
	msgMentorNotFound  = "ментор не найден"
	msgDateInPast      = "дата в прошлом"
	msgDateTooFar      = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /mentors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(mentorID, dateStr, duration)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/available-slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/available-slots - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /mentors/{id}/available-slots - Date in past: mentor_id=%d, date=%s", mentorID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /mentors/{id}/available-slots - Date too far: mentor_id=%d, date=%s", mentorID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /mentors/{id}/available-slots - Failed to get slots: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/available-slots - Slots retrieved: mentor_id=%d, date=%s, slots_count=%d",
		mentorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
