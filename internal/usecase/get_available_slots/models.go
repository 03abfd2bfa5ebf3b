package get_available_slots

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

// Request модель запроса на получение свободных слотов
type Request struct {
	MentorID        int64     // ID ментора
	Date            time.Time // Календарная дата в часовом поясе ментора
	DurationMinutes *int      // Длительность встречи (nil - значение по умолчанию)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	MentorID        int64
	Timezone        string
	DurationMinutes int
	Slots           []types.TimeOfDay // Время начала слотов по возрастанию
}
