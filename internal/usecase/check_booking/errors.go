package check_booking

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("check_booking: mentor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_booking: internal error")
)
