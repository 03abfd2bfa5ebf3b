package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	"github.com/m04kA/SMC-MentorBookingService/pkg/ptr"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

type fakeMentors struct {
	mentor *domain.Mentor
	err    error
}

func (f *fakeMentors) GetByID(_ context.Context, id int64) (*domain.Mentor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.mentor == nil || f.mentor.ID != id {
		return nil, mentorRepo.ErrMentorNotFound
	}
	return f.mentor, nil
}

type fakeRules struct {
	rules []domain.WeeklyAvailability
}

func (f *fakeRules) GetByMentorID(_ context.Context, _ int64) ([]domain.WeeklyAvailability, error) {
	return f.rules, nil
}

type fakeAppointments struct {
	list     []domain.Appointment
	from, to time.Time
	err      error
}

func (f *fakeAppointments) GetActiveInRange(_ context.Context, _ int64, from, to time.Time) ([]domain.Appointment, error) {
	f.from, f.to = from, to
	return f.list, f.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const mentorID int64 = 42

// Понедельник
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	mentors      *fakeMentors
	rules        *fakeRules
	appointments *fakeAppointments
	uc           *UseCase
}

func newFixture(now time.Time, cfg Config) *fixture {
	f := &fixture{
		mentors: &fakeMentors{mentor: &domain.Mentor{ID: mentorID, Timezone: "UTC", Status: domain.MentorStatusActive}},
		rules: &fakeRules{rules: []domain.WeeklyAvailability{{
			MentorID:               mentorID,
			Weekdays:               []time.Weekday{time.Monday},
			StartTime:              types.MustTimeOfDay("09:00"),
			EndTime:                types.MustTimeOfDay("12:00"),
			SlotGranularityMinutes: 60,
		}}},
		appointments: &fakeAppointments{},
	}
	f.uc = NewUseCase(f.mentors, f.rules, f.appointments, cfg, nopLogger{})
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func slotStrings(slots []types.TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func TestExecute_ReturnsFreeSlots(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1), Config{DefaultDurationMinutes: 60, DefaultTimezone: "UTC"})
	f.appointments.list = []domain.Appointment{{
		MentorID:        mentorID,
		ScheduledStart:  monday.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, []string{"09:00", "11:00"}, slotStrings(resp.Slots))

	assert.Equal(t, monday.Add(-8*time.Hour), f.appointments.from)
	assert.Equal(t, monday.AddDate(0, 0, 1), f.appointments.to)
}

func TestExecute_ExplicitDuration(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1), Config{DefaultDurationMinutes: 60})

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday, DurationMinutes: ptr.Ptr(120)})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00"}, slotStrings(resp.Slots))
}

func TestExecute_MinNoticeFiltersToday(t *testing.T) {
	now := monday.Add(9*time.Hour + 15*time.Minute)
	f := newFixture(now, Config{DefaultDurationMinutes: 60, MinNoticeMinutes: 60})

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []string{"11:00"}, slotStrings(resp.Slots))
}

func TestExecute_InactiveMentorHasNoSlots(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1), Config{DefaultDurationMinutes: 60})
	f.mentors.mentor.Status = domain.MentorStatusBusy

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_NoRuleForWeekday(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -7), Config{DefaultDurationMinutes: 60})

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday.AddDate(0, 0, -1)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		cfg     Config
		req     *Request
		mutate  func(f *fixture)
		wantErr error
	}{
		{
			name:    "invalid mentor id",
			now:     monday,
			req:     &Request{MentorID: 0, Date: monday},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			now:     monday,
			req:     &Request{MentorID: mentorID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "non positive duration",
			now:     monday,
			req:     &Request{MentorID: mentorID, Date: monday, DurationMinutes: ptr.Ptr(0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "too long duration",
			now:     monday,
			req:     &Request{MentorID: mentorID, Date: monday, DurationMinutes: ptr.Ptr(domain.MaxAppointmentDurationMinutes + 1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown mentor",
			now:     monday,
			req:     &Request{MentorID: 7, Date: monday},
			wantErr: ErrMentorNotFound,
		},
		{
			name:    "past date",
			now:     monday.AddDate(0, 0, 1),
			req:     &Request{MentorID: mentorID, Date: monday},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "too far ahead",
			now:     monday.AddDate(0, 0, -10),
			cfg:     Config{AdvanceBookingDays: 7},
			req:     &Request{MentorID: mentorID, Date: monday},
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name: "repository failure",
			now:  monday,
			req:  &Request{MentorID: mentorID, Date: monday},
			mutate: func(f *fixture) {
				f.appointments.err = errors.New("db down")
			},
			wantErr: ErrInternal,
		},
		{
			name: "mentor lookup failure",
			now:  monday,
			req:  &Request{MentorID: mentorID, Date: monday},
			mutate: func(f *fixture) {
				f.mentors.err = errors.New("db down")
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.DefaultDurationMinutes = 60
			f := newFixture(tt.now, cfg)
			if tt.mutate != nil {
				tt.mutate(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_MentorTimezone(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1), Config{DefaultDurationMinutes: 60, DefaultTimezone: "UTC"})
	f.mentors.mentor.Timezone = "Europe/Moscow"
	// 10:00 по Москве = 07:00 UTC
	f.appointments.list = []domain.Appointment{{
		MentorID:        mentorID,
		ScheduledStart:  monday.Add(7 * time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	assert.Equal(t, []string{"09:00", "11:00"}, slotStrings(resp.Slots))
}
