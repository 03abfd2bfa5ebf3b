package check_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	checkBooking "github.com/m04kA/SMC-MentorBookingService/internal/usecase/check_booking"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// CheckBookingResponse HTTP response model
type CheckBookingResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"` // INVALID_DURATION, OUTSIDE_AVAILABILITY, CONFLICT
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(mentorID int64, dateStr, timeStr string, duration *int) (*checkBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	start, err := types.ParseTimeOfDay(timeStr)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	return &checkBooking.Request{
		MentorID:        mentorID,
		Date:            date,
		Time:            start,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkBooking.Response) *CheckBookingResponse {
	return &CheckBookingResponse{OK: resp.OK, Reason: resp.Reason}
}
