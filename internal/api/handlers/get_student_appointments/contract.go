package get_student_appointments

import (
	"context"

	"github.com/m04kA/SMC-MentorBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByStudent(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
