package get_student_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/appointments"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidQuery     = "некорректные параметры page, pageSize или status"
	msgForbidden        = "список встреч доступен только самому студенту"
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

// Handle GET /api/v1/students/{studentId}/appointments
// Query params: page (>=1), pageSize (1..100), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, err := handlers.PathInt64(r, "studentId")
	if err != nil {
		h.logger.Warn("GET /students/{id}/appointments - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(r, studentID, userID)
	if err != nil {
		h.logger.Warn("GET /students/{id}/appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListByStudent(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/appointments - Access denied: student_id=%d, user_id=%d", studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /students/{id}/appointments - Failed to list: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
