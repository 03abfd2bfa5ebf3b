package mentor

import "errors"

var (
	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = errors.New("mentor.repository: mentor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("mentor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("mentor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("mentor.repository: failed to scan row")
)
