package domain

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// SlotRequest is a requested booking: a calendar date and a local time of day
// in the mentor's zone. It is never persisted.
type SlotRequest struct {
	MentorID        int64
	Date            time.Time
	Time            types.TimeOfDay
	DurationMinutes int
}
