package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// Config правила бронирования из конфигурации сервиса
type Config struct {
	DefaultTimezone        string
	DefaultDurationMinutes int
	AdvanceBookingDays     int // 0 = без ограничения
	MinNoticeMinutes       int
}

// Request модель запроса на создание встречи
type Request struct {
	StudentID       int64           // ID студента (из X-User-ID)
	MentorID        int64           // ID ментора
	Date            time.Time       // Календарная дата в часовом поясе ментора
	Time            types.TimeOfDay // Время начала по часам ментора
	DurationMinutes *int            // nil - значение по умолчанию
	Notes           *string         // Заметки (опционально)
}

// Response модель ответа с созданной встречей
type Response struct {
	ID              int64
	MentorID        int64
	StudentID       int64
	ScheduledStart  time.Time // UTC
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
