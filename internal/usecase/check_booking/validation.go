package check_booking

import "fmt"

// validateRequest валидирует входные данные запроса.
// Длительность не проверяется: её оценивает движок (INVALID_DURATION).
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	return nil
}
