package availability

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

var (
	ErrDateInPast         = errors.New("availability: date is in the past")
	ErrDateTooFarInFuture = errors.New("availability: date is beyond the advance booking limit")
)

// BookingWindow limits how far ahead and how late a booking may be made.
// AdvanceBookingDays of 0 means no limit.
type BookingWindow struct {
	AdvanceBookingDays int
	MinNoticeMinutes   int
}

// Today returns the mentor's current calendar date
func (s Schedule) Today(now time.Time) time.Time {
	y, m, d := now.In(s.location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func civil(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckDate rejects dates before the mentor's today and past the advance limit
func (w BookingWindow) CheckDate(s Schedule, date, now time.Time) error {
	today := s.Today(now)
	day := civil(date)

	if day.Before(today) {
		return ErrDateInPast
	}
	if w.AdvanceBookingDays > 0 && day.After(today.AddDate(0, 0, w.AdvanceBookingDays)) {
		return ErrDateTooFarInFuture
	}
	return nil
}

// HasNotice reports whether a booking starting at the given local time on
// date begins at least MinNoticeMinutes after now.
func (w BookingWindow) HasNotice(s Schedule, date time.Time, at types.TimeOfDay, now time.Time) bool {
	earliest := now.Add(time.Duration(w.MinNoticeMinutes) * time.Minute)
	return !s.At(date, at).Before(earliest)
}
