package domain

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// WeeklyAvailability is a recurring window in which a mentor accepts bookings.
// Rules of one mentor may overlap; their union is the day's availability.
type WeeklyAvailability struct {
	ID                     int64
	MentorID               int64
	Weekdays               []time.Weekday
	StartTime              types.TimeOfDay
	EndTime                types.TimeOfDay
	SlotGranularityMinutes int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Covers returns true if the rule applies on the given weekday
func (w *WeeklyAvailability) Covers(day time.Weekday) bool {
	for _, d := range w.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Contains returns true if [start, start+durationMinutes) lies inside the window
func (w *WeeklyAvailability) Contains(start types.TimeOfDay, durationMinutes int) bool {
	end := start.Minutes() + durationMinutes
	return start >= w.StartTime && end <= w.EndTime.Minutes()
}
