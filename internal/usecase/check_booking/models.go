package check_booking

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// Config параметры проверки из конфигурации сервиса
type Config struct {
	DefaultTimezone        string
	DefaultDurationMinutes int
}

// Request модель запроса на проверку возможности записи
type Request struct {
	MentorID        int64
	Date            time.Time       // Календарная дата в часовом поясе ментора
	Time            types.TimeOfDay // Время начала по часам ментора
	DurationMinutes *int            // nil - значение по умолчанию
}

// Response результат проверки. Reason пуст, если OK.
type Response struct {
	OK     bool
	Reason string
}
