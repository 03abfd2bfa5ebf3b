package availability

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// Overlaps reports whether half-open intervals [s1,e1) and [s2,e2) intersect.
// Back-to-back intervals do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// HasConflict reports whether [start, start+durationMinutes) overlaps any
// non-cancelled appointment of mentorID. A non-positive duration never
// conflicts; callers reject it before getting here.
func HasConflict(mentorID int64, start time.Time, durationMinutes int, existing []domain.Appointment) bool {
	if durationMinutes <= 0 {
		return false
	}
	return overlapsAny(start, durationMinutes, activeFor(mentorID, existing))
}

func overlapsAny(start time.Time, durationMinutes int, blocking []*domain.Appointment) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, a := range blocking {
		if Overlaps(start, end, a.ScheduledStart, a.End()) {
			return true
		}
	}
	return false
}

// activeFor keeps the appointments of mentorID that still block time
func activeFor(mentorID int64, existing []domain.Appointment) []*domain.Appointment {
	blocking := make([]*domain.Appointment, 0, len(existing))
	for i := range existing {
		a := &existing[i]
		if a.MentorID == mentorID && a.IsActive() && a.DurationMinutes > 0 {
			blocking = append(blocking, a)
		}
	}
	return blocking
}
