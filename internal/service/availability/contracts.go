package availability

import (
	"context"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mentor, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByMentorID(ctx context.Context, mentorID int64) ([]domain.WeeklyAvailability, error)
	ReplaceForMentor(ctx context.Context, mentorID int64, rules []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
