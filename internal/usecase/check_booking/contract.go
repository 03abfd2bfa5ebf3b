package check_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mentor, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByMentorID(ctx context.Context, mentorID int64) ([]domain.WeeklyAvailability, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetActiveInRange(ctx context.Context, mentorID int64, from, to time.Time) ([]domain.Appointment, error)
}

// Metrics счётчик решений по бронированию
type Metrics interface {
	IncBookingDecision(flow, reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
