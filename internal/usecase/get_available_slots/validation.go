package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinDurationMinutes || d > domain.MaxAppointmentDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxAppointmentDurationMinutes)
		}
	}

	return nil
}
