package check_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorBookingService/internal/availability"
	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	"github.com/m04kA/SMC-MentorBookingService/pkg/ptr"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

type fakeMentors struct{ mentor *domain.Mentor }

func (f *fakeMentors) GetByID(_ context.Context, id int64) (*domain.Mentor, error) {
	if f.mentor == nil || f.mentor.ID != id {
		return nil, mentorRepo.ErrMentorNotFound
	}
	return f.mentor, nil
}

type fakeRules struct{ rules []domain.WeeklyAvailability }

func (f *fakeRules) GetByMentorID(_ context.Context, _ int64) ([]domain.WeeklyAvailability, error) {
	return f.rules, nil
}

type fakeAppointments struct {
	list  []domain.Appointment
	calls int
}

func (f *fakeAppointments) GetActiveInRange(_ context.Context, _ int64, _, _ time.Time) ([]domain.Appointment, error) {
	f.calls++
	return f.list, nil
}

type fakeMetrics struct{ decisions map[string]int }

func (f *fakeMetrics) IncBookingDecision(flow, reason string) {
	f.decisions[flow+"/"+reason]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const mentorID int64 = 42

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func newUseCase(status domain.MentorStatus) (*UseCase, *fakeAppointments, *fakeMetrics) {
	mentors := &fakeMentors{mentor: &domain.Mentor{ID: mentorID, Timezone: "UTC", Status: status}}
	rules := &fakeRules{rules: []domain.WeeklyAvailability{{
		MentorID:               mentorID,
		Weekdays:               []time.Weekday{time.Monday},
		StartTime:              types.MustTimeOfDay("09:00"),
		EndTime:                types.MustTimeOfDay("11:00"),
		SlotGranularityMinutes: 60,
	}}}
	appointments := &fakeAppointments{list: []domain.Appointment{{
		MentorID:        mentorID,
		ScheduledStart:  monday.Add(9 * time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}}}
	m := &fakeMetrics{decisions: map[string]int{}}

	uc := NewUseCase(mentors, rules, appointments, m, Config{DefaultDurationMinutes: 60, DefaultTimezone: "UTC"}, nopLogger{})
	return uc, appointments, m
}

func TestExecute_Decisions(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		at       string
		duration *int
		want     Response
	}{
		{"conflict", monday, "09:30", ptr.Ptr(30), Response{Reason: string(availability.ReasonConflict)}},
		{"back to back", monday, "10:00", ptr.Ptr(30), Response{OK: true}},
		{"default duration", monday, "10:00", nil, Response{OK: true}},
		{"outside availability", monday, "10:30", ptr.Ptr(60), Response{Reason: string(availability.ReasonOutsideAvailability)}},
		{"sunday", monday.AddDate(0, 0, -1), "09:00", ptr.Ptr(30), Response{Reason: string(availability.ReasonOutsideAvailability)}},
		{"zero duration", monday, "10:00", ptr.Ptr(0), Response{Reason: string(availability.ReasonInvalidDuration)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newUseCase(domain.MentorStatusActive)

			resp, err := uc.Execute(context.Background(), &Request{
				MentorID:        mentorID,
				Date:            tt.date,
				Time:            types.MustTimeOfDay(tt.at),
				DurationMinutes: tt.duration,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *resp)
		})
	}
}

func TestExecute_InvalidDurationSkipsLookup(t *testing.T) {
	uc, appointments, m := newUseCase(domain.MentorStatusActive)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday, Time: types.MustTimeOfDay("10:00"), DurationMinutes: ptr.Ptr(-5)})
	require.NoError(t, err)

	assert.Equal(t, string(availability.ReasonInvalidDuration), resp.Reason)
	assert.Equal(t, 0, appointments.calls)
	assert.Equal(t, 1, m.decisions["check/INVALID_DURATION"])
}

func TestExecute_InvalidDurationBeforeMentorLookup(t *testing.T) {
	uc, _, m := newUseCase(domain.MentorStatusActive)

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:        999,
		Date:            monday,
		Time:            types.MustTimeOfDay("10:00"),
		DurationMinutes: ptr.Ptr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, Response{Reason: string(availability.ReasonInvalidDuration)}, *resp)
	assert.Equal(t, 1, m.decisions["check/INVALID_DURATION"])
}

func TestExecute_InactiveMentorIsOutsideAvailability(t *testing.T) {
	uc, _, _ := newUseCase(domain.MentorStatusInactive)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday, Time: types.MustTimeOfDay("10:00")})
	require.NoError(t, err)
	assert.Equal(t, string(availability.ReasonOutsideAvailability), resp.Reason)
}

func TestExecute_CountsAccepted(t *testing.T) {
	uc, _, m := newUseCase(domain.MentorStatusActive)

	_, err := uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday, Time: types.MustTimeOfDay("10:00")})
	require.NoError(t, err)
	assert.Equal(t, 1, m.decisions["check/accepted"])
}

func TestExecute_Errors(t *testing.T) {
	uc, _, _ := newUseCase(domain.MentorStatusActive)

	_, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, Time: types.MustTimeOfDay("10:00")})
	assert.ErrorIs(t, err, ErrMentorNotFound)

	_, err = uc.Execute(context.Background(), &Request{MentorID: mentorID, Time: types.MustTimeOfDay("10:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday, Time: types.TimeOfDay(2000)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
