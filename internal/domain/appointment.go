package domain

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status may change to next.
// Only pending -> completed and pending -> cancelled are allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// Appointment is a booked session between a student and a mentor.
// ScheduledStart is always a UTC instant.
type Appointment struct {
	ID              int64
	MentorID        int64
	StudentID       int64
	ScheduledStart  time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End returns the exclusive end of the appointment interval
func (a *Appointment) End() time.Time {
	return a.ScheduledStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive returns true if the appointment blocks the mentor's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsParticipant returns true if userID is the appointment's student or mentor
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.StudentID == userID || a.MentorID == userID
}

// AppointmentsFilter фильтр для списков встреч ментора или студента
type AppointmentsFilter struct {
	MentorID  *int64
	StudentID *int64
	From      *time.Time         // Начало периода (включительно)
	To        *time.Time         // Конец периода (не включительно)
	Status    *AppointmentStatus // Фильтр по статусу (опционально)
	Limit     int
	Offset    int
}
