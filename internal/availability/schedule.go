// Package availability decides whether a mentor can be booked at a given
// time and enumerates the free slots of a day.
//
// Everything here is pure: rules and existing appointments come in as
// arguments and nothing is retained between calls. Times of day are
// interpreted in the mentor's zone (Schedule.Location); appointment
// instants are compared in UTC.
package availability

import (
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// Schedule is the complete availability input for one mentor
type Schedule struct {
	MentorID int64
	Location *time.Location
	Rules    []domain.WeeklyAvailability
}

// NewSchedule builds a schedule. A nil location means UTC.
func NewSchedule(mentorID int64, loc *time.Location, rules []domain.WeeklyAvailability) Schedule {
	if loc == nil {
		loc = time.UTC
	}
	return Schedule{MentorID: mentorID, Location: loc, Rules: rules}
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// At converts a calendar date and a local time of day into a UTC instant.
// Only the year, month and day of date are used.
func (s Schedule) At(date time.Time, at types.TimeOfDay) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, at.Hour(), at.Minute(), 0, 0, s.location()).UTC()
}

// DayBounds returns the UTC instants of the local midnight that starts date
// and the one that ends it.
func (s Schedule) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.location())
	end := time.Date(y, m, d+1, 0, 0, 0, 0, s.location())
	return start.UTC(), end.UTC()
}

// weekday of the calendar date, independent of the date's own location
func weekday(date time.Time) time.Weekday {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday()
}

// rulesFor yields the mentor's rules that apply on the weekday of date
func (s Schedule) rulesFor(date time.Time) iter.Seq[*domain.WeeklyAvailability] {
	day := weekday(date)
	return func(yield func(*domain.WeeklyAvailability) bool) {
		for i := range s.Rules {
			rule := &s.Rules[i]
			if rule.MentorID != s.MentorID || !rule.Covers(day) {
				continue
			}
			if !yield(rule) {
				return
			}
		}
	}
}

// IsWithinAvailability reports whether [at, at+durationMinutes) on date fits
// inside at least one of the mentor's windows for that weekday.
func (s Schedule) IsWithinAvailability(date time.Time, at types.TimeOfDay, durationMinutes int) bool {
	if durationMinutes <= 0 {
		return false
	}
	for rule := range s.rulesFor(date) {
		if rule.Contains(at, durationMinutes) {
			return true
		}
	}
	return false
}

// AvailableSlots yields, in ascending order and without duplicates, every
// start time on date at which a booking of durationMinutes fits a window
// and does not conflict with existing. The sequence is recomputed on each
// iteration.
func (s Schedule) AvailableSlots(date time.Time, durationMinutes int, existing []domain.Appointment) iter.Seq[types.TimeOfDay] {
	return func(yield func(types.TimeOfDay) bool) {
		if durationMinutes <= 0 {
			return
		}

		blocking := activeFor(s.MentorID, existing)
		for _, candidate := range s.candidates(date, durationMinutes) {
			if !s.IsWithinAvailability(date, candidate, durationMinutes) {
				continue
			}
			if overlapsAny(s.At(date, candidate), durationMinutes, blocking) {
				continue
			}
			if !yield(candidate) {
				return
			}
		}
	}
}

// SlotList collects AvailableSlots into a slice
func (s Schedule) SlotList(date time.Time, durationMinutes int, existing []domain.Appointment) []types.TimeOfDay {
	slots := slices.Collect(s.AvailableSlots(date, durationMinutes, existing))
	if slots == nil {
		return []types.TimeOfDay{}
	}
	return slots
}

// candidates walks every matching rule from its start to end-duration
// inclusive at the rule's granularity; the result is sorted and unique.
func (s Schedule) candidates(date time.Time, durationMinutes int) []types.TimeOfDay {
	set := make(map[types.TimeOfDay]struct{})
	for rule := range s.rulesFor(date) {
		step := rule.SlotGranularityMinutes
		if step <= 0 {
			continue
		}
		last := rule.EndTime.Minutes() - durationMinutes
		for m := rule.StartTime.Minutes(); m <= last; m += step {
			set[types.TimeOfDay(m)] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// ValidateBooking is the single check to run before persisting a new
// appointment. Duration is checked first, then availability, then conflicts.
func (s Schedule) ValidateBooking(req domain.SlotRequest, existing []domain.Appointment) Decision {
	if req.DurationMinutes <= 0 {
		return reject(ReasonInvalidDuration)
	}
	if req.MentorID != s.MentorID || !s.IsWithinAvailability(req.Date, req.Time, req.DurationMinutes) {
		return reject(ReasonOutsideAvailability)
	}
	if HasConflict(s.MentorID, s.At(req.Date, req.Time), req.DurationMinutes, existing) {
		return reject(ReasonConflict)
	}
	return accept()
}
