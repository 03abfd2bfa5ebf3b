package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrStatusChanged возвращается, когда статус встречи изменился до обновления
	ErrStatusChanged = errors.New("appointment.repository: appointment status changed concurrently")
)
