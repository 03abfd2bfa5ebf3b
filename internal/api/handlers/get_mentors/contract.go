package get_mentors

import (
	"context"

	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors/models"
)

type MentorService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.MentorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
