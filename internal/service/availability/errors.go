package availability

import "errors"

var (
	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = errors.New("availability.service: mentor not found")

	// ErrAccessDenied возвращается, когда правила меняет не сам ментор
	ErrAccessDenied = errors.New("availability.service: access denied")

	// ErrInvalidRule возвращается при некорректном правиле доступности
	ErrInvalidRule = errors.New("availability.service: invalid availability rule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
