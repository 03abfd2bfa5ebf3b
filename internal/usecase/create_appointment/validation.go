package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Неположительную длительность оценивает движок (ErrInvalidDuration).
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.StudentID == req.MentorID {
		return fmt.Errorf("%w: cannot book an appointment with yourself", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxAppointmentDurationMinutes)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
