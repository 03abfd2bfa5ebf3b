package upsert_mentor

import (
	"context"

	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors/models"
)

type MentorService interface {
	Upsert(ctx context.Context, req *models.UpsertRequest) (*models.MentorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
