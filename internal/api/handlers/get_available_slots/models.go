package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MentorBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string            `json:"date"`
	MentorID        int64             `json:"mentorId"`
	Timezone        string            `json:"timezone"`
	DurationMinutes int               `json:"durationMinutes"`
	Slots           []types.TimeOfDay `json:"slots"` // ["09:00", "10:00"]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []types.TimeOfDay{}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		MentorID:        resp.MentorID,
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(mentorID int64, dateStr string, duration *int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		MentorID:        mentorID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}
