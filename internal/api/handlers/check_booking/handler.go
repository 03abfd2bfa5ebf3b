package check_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	checkBooking "github.com/m04kA/SMC-MentorBookingService/internal/usecase/check_booking"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMissingParams   = "параметры date и time обязательны"
	msgInvalidParams   = "некорректные параметры, ожидается date=YYYY-MM-DD и time=HH:MM"
	msgInvalidDuration = "некорректная длительность встречи"
	msgMentorNotFound  = "ментор не найден"
)

type Handler struct {
	useCase CheckBookingUseCase
	logger  Logger
}

func NewHandler(useCase CheckBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/booking-check
// Query params: date (YYYY-MM-DD), time (HH:MM), duration (optional, minutes).
// Отказ движка - это 200 с ok=false и кодом причины.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/booking-check - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	query := r.URL.Query()
	dateStr, timeStr := query.Get("date"), query.Get("time")
	if dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /mentors/{id}/booking-check - Missing date or time")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/booking-check - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(mentorID, dateStr, timeStr, duration)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/booking-check - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkBooking.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/booking-check - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, checkBooking.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/booking-check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /mentors/{id}/booking-check - Failed to check booking: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
