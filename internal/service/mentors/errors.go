package mentors

import "errors"

var (
	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = errors.New("mentors.service: mentor not found")

	// ErrAccessDenied возвращается, когда профиль меняет не сам ментор
	ErrAccessDenied = errors.New("mentors.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mentors.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("mentors.service: internal error")
)
