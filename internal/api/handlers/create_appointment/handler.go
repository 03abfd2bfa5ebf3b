package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/availability"
	createAppointment "github.com/m04kA/SMC-MentorBookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMentorNotFound     = "ментор не найден"
	msgMentorUnavailable  = "ментор сейчас не принимает записи"
	msgNotAStudent        = "записываться могут только активные студенты"
	msgDateInPast         = "дата в прошлом"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgInvalidDuration    = string(availability.ReasonInvalidDuration)
	msgOutside            = string(availability.ReasonOutsideAvailability)
	msgConflict           = string(availability.ReasonConflict)
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrConflict):
			h.logger.Warn("POST /appointments - Conflict: student_id=%d, mentor_id=%d", studentID, req.MentorID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createAppointment.ErrOutsideAvailability):
			h.logger.Warn("POST /appointments - Outside availability: student_id=%d, mentor_id=%d", studentID, req.MentorID)
			handlers.RespondUnprocessable(w, msgOutside)

		case errors.Is(err, createAppointment.ErrInvalidDuration):
			h.logger.Warn("POST /appointments - Invalid duration: student_id=%d, mentor_id=%d", studentID, req.MentorID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createAppointment.ErrMentorNotFound):
			h.logger.Warn("POST /appointments - Mentor not found: mentor_id=%d", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, createAppointment.ErrMentorUnavailable):
			h.logger.Warn("POST /appointments - Mentor unavailable: mentor_id=%d", req.MentorID)
			handlers.RespondUnprocessable(w, msgMentorUnavailable)

		case errors.Is(err, createAppointment.ErrNotAStudent):
			h.logger.Warn("POST /appointments - Not a student: user_id=%d", studentID)
			handlers.RespondForbidden(w, msgNotAStudent)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: student_id=%d, date=%s", studentID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far: student_id=%d, date=%s", studentID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: student_id=%d, date=%s, time=%s", studentID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: student_id=%d, mentor_id=%d, error=%v",
				studentID, req.MentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, student_id=%d, mentor_id=%d",
		result.ID, studentID, req.MentorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
