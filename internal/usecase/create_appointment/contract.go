package create_appointment

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
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetActiveInRange(ctx context.Context, mentorID int64, from, to time.Time) ([]domain.Appointment, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	IsStudent(ctx context.Context, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчик решений по бронированию
type Metrics interface {
	IncBookingDecision(flow, reason string)
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
