package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListRequest запрос списка встреч ментора или студента
type ListRequest struct {
	UserID   int64   `json:"userId"`
	OwnerID  int64   `json:"ownerId"` // ID ментора или студента из пути
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	Status   *string `json:"status,omitempty"`
}

// CancelRequest запрос на отмену встречи
type CancelRequest struct {
	UserID int64   `json:"userId"`
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	MentorID        int64     `json:"mentorId"`
	StudentID       int64     `json:"studentId"`
	ScheduledStart  time.Time `json:"scheduledStart"` // UTC, RFC 3339
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		MentorID:           a.MentorID,
		StudentID:          a.StudentID,
		ScheduledStart:     a.ScheduledStart.UTC(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	resp.CancelledAt = formatTime(a.CancelledAt)
	resp.CompletedAt = formatTime(a.CompletedAt)

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment, page, pageSize int) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Page:         page,
		PageSize:     pageSize,
	}

	for _, a := range list {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
