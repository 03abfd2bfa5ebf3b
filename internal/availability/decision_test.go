package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

func request(date string, hhmm string, duration int) domain.SlotRequest {
	d := monday
	if date == "sunday" {
		d = sunday
	}
	return domain.SlotRequest{MentorID: mentorID, Date: d, Time: tod(hhmm), DurationMinutes: duration}
}

func TestValidateBooking(t *testing.T) {
	s := mondaySchedule()
	existing := []domain.Appointment{
		appointment(mentorID, at("09:00"), 60, domain.StatusPending),
	}

	tests := []struct {
		name string
		req  domain.SlotRequest
		want Decision
	}{
		{"conflict", request("monday", "09:30", 30), Decision{Reason: ReasonConflict}},
		{"back to back", request("monday", "10:00", 30), Decision{OK: true}},
		{"outside window", request("monday", "10:45", 30), Decision{Reason: ReasonOutsideAvailability}},
		{"no rule on sunday", request("sunday", "09:00", 30), Decision{Reason: ReasonOutsideAvailability}},
		{"zero duration", request("monday", "10:00", 0), Decision{Reason: ReasonInvalidDuration}},
		{"negative duration", request("monday", "10:00", -30), Decision{Reason: ReasonInvalidDuration}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ValidateBooking(tt.req, existing))
		})
	}
}

func TestValidateBooking_DurationCheckedFirst(t *testing.T) {
	s := mondaySchedule()
	existing := []domain.Appointment{
		appointment(mentorID, at("09:00"), 60, domain.StatusPending),
	}

	// Sunday and overlapping would fail for other reasons too.
	assert.Equal(t, ReasonInvalidDuration, s.ValidateBooking(request("sunday", "09:00", 0), existing).Reason)
	assert.Equal(t, ReasonInvalidDuration, s.ValidateBooking(request("monday", "09:00", 0), existing).Reason)
}

func TestValidateBooking_AvailabilityBeforeConflict(t *testing.T) {
	s := mondaySchedule()
	existing := []domain.Appointment{
		appointment(mentorID, at("10:30"), 60, domain.StatusPending),
	}

	assert.Equal(t, ReasonOutsideAvailability, s.ValidateBooking(request("monday", "10:30", 60), existing).Reason)
}

func TestValidateBooking_CancelledDoesNotBlock(t *testing.T) {
	s := mondaySchedule()
	existing := []domain.Appointment{
		appointment(mentorID, at("09:00"), 60, domain.StatusCancelled),
	}

	assert.True(t, s.ValidateBooking(request("monday", "09:00", 60), existing).OK)
}

func TestValidateBooking_OtherMentor(t *testing.T) {
	s := mondaySchedule()
	req := request("monday", "09:00", 60)
	req.MentorID = mentorID + 1

	assert.Equal(t, ReasonOutsideAvailability, s.ValidateBooking(req, nil).Reason)
}

func TestValidateBooking_AcceptedSlotsAreListed(t *testing.T) {
	s := mondaySchedule()

	for _, slot := range s.SlotList(monday, 60, nil) {
		d := s.ValidateBooking(domain.SlotRequest{MentorID: mentorID, Date: monday, Time: slot, DurationMinutes: 60}, nil)
		assert.True(t, d.OK, slot.String())
	}
}
