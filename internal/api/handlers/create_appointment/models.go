package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-MentorBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	MentorID        int64   `json:"mentorId"`
	Date            string  `json:"date"` // "2025-10-15", по календарю ментора
	Time            string  `json:"time"` // "10:00", по часам ментора
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	StudentID       int64   `json:"studentId"`
	ScheduledStart  string  `json:"scheduledStart"` // RFC 3339, UTC
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(studentID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	start, err := types.ParseTimeOfDay(r.Time)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	return &createAppointment.Request{
		StudentID:       studentID,
		MentorID:        r.MentorID,
		Date:            date,
		Time:            start,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		MentorID:        resp.MentorID,
		StudentID:       resp.StudentID,
		ScheduledStart:  resp.ScheduledStart.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
