package mentors

import (
	"context"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mentor, error)
	Upsert(ctx context.Context, m *domain.Mentor) (*domain.Mentor, error)
	List(ctx context.Context, filter domain.MentorsFilter) ([]*domain.Mentor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
