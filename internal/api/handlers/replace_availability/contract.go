package replace_availability

import (
	"context"

	"github.com/m04kA/SMC-MentorBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Replace(ctx context.Context, req *models.ReplaceRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
