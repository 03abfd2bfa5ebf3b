package create_appointment

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("create_appointment: mentor not found")

	// ErrMentorUnavailable возвращается, когда ментор не принимает записи (inactive, busy)
	ErrMentorUnavailable = errors.New("create_appointment: mentor is not accepting bookings")

	// ErrNotAStudent возвращается, когда пользователь не найден или не является студентом
	ErrNotAStudent = errors.New("create_appointment: user is not a student")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда нарушен min_notice_minutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidDuration возвращается, когда длительность не положительная
	ErrInvalidDuration = errors.New("create_appointment: duration must be positive")

	// ErrOutsideAvailability возвращается, когда время вне окон доступности ментора
	ErrOutsideAvailability = errors.New("create_appointment: requested time is outside mentor availability")

	// ErrConflict возвращается, когда время пересекается с другой встречей ментора
	ErrConflict = errors.New("create_appointment: requested time conflicts with another appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
