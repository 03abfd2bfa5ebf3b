package get_available_slots

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
	// GetActiveInRange возвращает неотменённые встречи ментора с началом в [from, to)
	GetActiveInRange(ctx context.Context, mentorID int64, from, to time.Time) ([]domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
