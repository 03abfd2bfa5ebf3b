package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/appointment"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	"github.com/m04kA/SMC-MentorBookingService/pkg/ptr"
	"github.com/m04kA/SMC-MentorBookingService/pkg/txmanager"
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
	list      []domain.Appointment
	created   []*domain.Appointment
	createErr error
	rangeErr  error
}

func (f *fakeAppointments) GetActiveInRange(_ context.Context, mentorID int64, from, to time.Time) ([]domain.Appointment, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var out []domain.Appointment
	for _, a := range f.list {
		if a.MentorID == mentorID && !a.ScheduledStart.Before(from) && a.ScheduledStart.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = int64(len(f.list) + 1)
	f.list = append(f.list, *a)
	f.created = append(f.created, a)
	return a, nil
}

type fakeUsers struct {
	students map[int64]bool
	err      error
}

func (f *fakeUsers) IsStudent(_ context.Context, id int64) (bool, error) {
	return f.students[id], f.err
}

// fakeTx выполняет функцию сразу; maxRetries имитирует поведение txmanager
type fakeTx struct {
	attempts   int
	maxRetries int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	retries := f.maxRetries
	if retries == 0 {
		retries = 1
	}
	var err error
	for i := 0; i < retries; i++ {
		f.attempts++
		err = fn(ctx)
		if !txmanager.IsSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, err)
}

type fakeMetrics struct{ decisions map[string]int }

func (f *fakeMetrics) IncBookingDecision(flow, reason string) {
	f.decisions[flow+"/"+reason]++
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	mentorID  int64 = 42
	studentID int64 = 1001
)

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	mentors      *fakeMentors
	appointments *fakeAppointments
	users        *fakeUsers
	tx           *fakeTx
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		mentors:      &fakeMentors{mentor: &domain.Mentor{ID: mentorID, Timezone: "UTC", Status: domain.MentorStatusActive}},
		appointments: &fakeAppointments{},
		users:        &fakeUsers{students: map[int64]bool{studentID: true, studentID + 1: true}},
		tx:           &fakeTx{},
		metrics:      &fakeMetrics{decisions: map[string]int{}},
	}
	rules := &fakeRules{rules: []domain.WeeklyAvailability{{
		MentorID:               mentorID,
		Weekdays:               []time.Weekday{time.Monday},
		StartTime:              types.MustTimeOfDay("09:00"),
		EndTime:                types.MustTimeOfDay("11:00"),
		SlotGranularityMinutes: 60,
	}}}
	if cfg.DefaultDurationMinutes == 0 {
		cfg.DefaultDurationMinutes = 60
	}
	f.uc = NewUseCase(f.mentors, rules, f.appointments, f.users, f.tx, f.metrics, cfg, nopLogger{})
	f.uc.timeProvider = fixedClock{now: monday.AddDate(0, 0, -1)}
	return f
}

func request(at string, duration *int) *Request {
	return &Request{
		StudentID:       studentID,
		MentorID:        mentorID,
		Date:            monday,
		Time:            types.MustTimeOfDay(at),
		DurationMinutes: duration,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(Config{})
	req := request("09:00", nil)
	req.Notes = ptr.Ptr("intro call")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, monday.Add(9*time.Hour), resp.ScheduledStart)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "intro call", *resp.Notes)
	assert.Equal(t, 1, f.metrics.decisions["create/accepted"])
}

func TestExecute_RoundTrip(t *testing.T) {
	f := newFixture(Config{})

	_, err := f.uc.Execute(context.Background(), request("09:00", ptr.Ptr(60)))
	require.NoError(t, err)

	other := request("09:30", ptr.Ptr(30))
	other.StudentID = studentID + 1
	_, err = f.uc.Execute(context.Background(), other)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.uc.Execute(context.Background(), request("10:00", ptr.Ptr(30)))
	assert.NoError(t, err)

	assert.Len(t, f.appointments.created, 2)
	assert.Equal(t, 1, f.metrics.decisions["create/CONFLICT"])
}

func TestExecute_MentorTimezone(t *testing.T) {
	f := newFixture(Config{})
	f.mentors.mentor.Timezone = "Asia/Tokyo"

	resp, err := f.uc.Execute(context.Background(), request("10:00", nil))
	require.NoError(t, err)

	// 10:00 Tokyo = 01:00 UTC
	assert.Equal(t, monday.Add(time.Hour), resp.ScheduledStart)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		now     *time.Time
		req     *Request
		mutate  func(f *fixture)
		wantErr error
	}{
		{
			name:    "zero duration",
			req:     request("09:00", ptr.Ptr(0)),
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "negative duration",
			req:     request("09:00", ptr.Ptr(-30)),
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "outside availability",
			req:     request("10:30", ptr.Ptr(60)),
			wantErr: ErrOutsideAvailability,
		},
		{
			name: "sunday",
			req: func() *Request {
				r := request("09:00", nil)
				r.Date = monday.AddDate(0, 0, 6)
				return r
			}(),
			wantErr: ErrOutsideAvailability,
		},
		{
			name: "conflict",
			req:  request("09:30", ptr.Ptr(30)),
			mutate: func(f *fixture) {
				f.appointments.list = []domain.Appointment{{
					MentorID: mentorID, StudentID: 7, ScheduledStart: monday.Add(9 * time.Hour),
					DurationMinutes: 60, Status: domain.StatusPending,
				}}
			},
			wantErr: ErrConflict,
		},
		{
			name: "conflict with appointment started before the window",
			req:  request("09:00", ptr.Ptr(30)),
			mutate: func(f *fixture) {
				f.appointments.list = []domain.Appointment{{
					MentorID: mentorID, StudentID: 7, ScheduledStart: monday.Add(8*time.Hour + 30*time.Minute),
					DurationMinutes: 60, Status: domain.StatusPending,
				}}
			},
			wantErr: ErrConflict,
		},
		{
			name:    "not a student",
			req:     func() *Request { r := request("09:00", nil); r.StudentID = 5; return r }(),
			wantErr: ErrNotAStudent,
		},
		{
			name:    "unknown mentor",
			req:     func() *Request { r := request("09:00", nil); r.MentorID = 77; return r }(),
			wantErr: ErrMentorNotFound,
		},
		{
			name:    "busy mentor",
			req:     request("09:00", nil),
			mutate:  func(f *fixture) { f.mentors.mentor.Status = domain.MentorStatusBusy },
			wantErr: ErrMentorUnavailable,
		},
		{
			name:    "self booking",
			req:     func() *Request { r := request("09:00", nil); r.StudentID = mentorID; return r }(),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "too long",
			req:     request("09:00", ptr.Ptr(domain.MaxAppointmentDurationMinutes+1)),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past date",
			now:     ptr.Ptr(monday.AddDate(0, 0, 1)),
			req:     request("09:00", nil),
			wantErr: ErrInvalidDate,
		},
		{
			name:    "too far ahead",
			cfg:     Config{AdvanceBookingDays: 3},
			now:     ptr.Ptr(monday.AddDate(0, 0, -4)),
			req:     request("09:00", nil),
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "min notice",
			cfg:     Config{MinNoticeMinutes: 120},
			now:     ptr.Ptr(monday.Add(8 * time.Hour)),
			req:     request("09:00", nil),
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "user service down",
			req:     request("09:00", nil),
			mutate:  func(f *fixture) { f.users.err = errors.New("timeout") },
			wantErr: ErrInternal,
		},
		{
			name:    "insert failure",
			req:     request("09:00", nil),
			mutate:  func(f *fixture) { f.appointments.createErr = errors.New("disk full") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.cfg)
			if tt.now != nil {
				f.uc.timeProvider = fixedClock{now: *tt.now}
			}
			if tt.mutate != nil {
				tt.mutate(f)
			}

			resp, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Empty(t, f.appointments.created)
		})
	}
}

func TestExecute_InvalidDurationCheckedFirst(t *testing.T) {
	f := newFixture(Config{})
	f.users.err = errors.New("must not be called")

	req := request("09:00", ptr.Ptr(0))
	req.Date = monday.AddDate(0, 0, 6)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, 0, f.tx.attempts)
	assert.Equal(t, 1, f.metrics.decisions["create/INVALID_DURATION"])
}

func TestExecute_SerializationFailureBecomesConflict(t *testing.T) {
	f := newFixture(Config{})
	f.tx.maxRetries = 3
	// Ошибка в том виде, в котором её возвращает репозиторий
	f.appointments.createErr = fmt.Errorf("%w: Create - execute insert: %w",
		appointmentRepo.ErrExecQuery, &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), request("09:00", nil))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 3, f.tx.attempts)
	assert.Equal(t, 1, f.metrics.decisions["create/CONFLICT"])
}

func TestExecute_SerializationFailureOnLockedReadIsRetried(t *testing.T) {
	f := newFixture(Config{})
	f.tx.maxRetries = 2
	f.appointments.rangeErr = fmt.Errorf("%w: GetActiveInRange - execute query: %w",
		appointmentRepo.ErrExecQuery, &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), request("09:00", nil))

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 2, f.tx.attempts)
	assert.Empty(t, f.appointments.created)
}

func TestExecute_StorageErrorIsInternal(t *testing.T) {
	f := newFixture(Config{})
	f.tx.maxRetries = 3
	f.appointments.createErr = fmt.Errorf("%w: Create - execute insert: %w",
		appointmentRepo.ErrExecQuery, &pq.Error{Code: "23505"})

	_, err := f.uc.Execute(context.Background(), request("09:00", nil))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.tx.attempts)
}
