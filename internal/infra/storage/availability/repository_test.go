package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

func TestWeekdayConversion(t *testing.T) {
	days := []time.Weekday{time.Sunday, time.Wednesday, time.Saturday}

	values := fromWeekdays(days)
	assert.Equal(t, []int64{0, 3, 6}, values)
	assert.Equal(t, days, toWeekdays(values))
	assert.Empty(t, toWeekdays(nil))
}

var created = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func TestGetByMentorID(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM availability_rules WHERE mentor_id = \$1 ORDER BY id ASC`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "mentor_id", "weekdays", "start_minute", "end_minute", "slot_granularity_minutes", "created_at", "updated_at"}).
			AddRow(int64(1), int64(5), "{1,3}", int64(540), int64(1080), 30, created, created))

	rules, err := repo.GetByMentorID(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, rules, 1)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, rules[0].Weekdays)
	assert.Equal(t, types.MustTimeOfDay("09:00"), rules[0].StartTime)
	assert.Equal(t, types.MustTimeOfDay("18:00"), rules[0].EndTime)
	assert.Equal(t, 30, rules[0].SlotGranularityMinutes)
}

func TestReplaceForMentor(t *testing.T) {
	repo, db, mock := newMockRepository(t)

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	mock.ExpectExec(`DELETE FROM availability_rules WHERE mentor_id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`INSERT INTO availability_rules \(mentor_id,weekdays,start_minute,end_minute,slot_granularity_minutes\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING id, created_at, updated_at`).
		WithArgs(int64(5), "{1,3}", types.MustTimeOfDay("09:00"), types.MustTimeOfDay("12:00"), 30).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), created, created))
	mock.ExpectQuery(`INSERT INTO availability_rules`).
		WithArgs(int64(5), "{6}", types.MustTimeOfDay("10:00"), types.MustTimeOfDay("24:00"), 60).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(12), created, created))

	saved, err := repo.ReplaceForMentor(ctx, 5, []domain.WeeklyAvailability{
		{Weekdays: []time.Weekday{time.Monday, time.Wednesday}, StartTime: types.MustTimeOfDay("09:00"), EndTime: types.MustTimeOfDay("12:00"), SlotGranularityMinutes: 30},
		{Weekdays: []time.Weekday{time.Saturday}, StartTime: types.MustTimeOfDay("10:00"), EndTime: types.MustTimeOfDay("24:00"), SlotGranularityMinutes: 60},
	})
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.Equal(t, int64(11), saved[0].ID)
	assert.Equal(t, int64(12), saved[1].ID)
	assert.Equal(t, int64(5), saved[1].MentorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForMentor_EmptyClearsRules(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM availability_rules`).WillReturnResult(sqlmock.NewResult(0, 2))

	saved, err := repo.ReplaceForMentor(context.Background(), 5, nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForMentor_DeleteErrorKeepsCause(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM availability_rules`).WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.ReplaceForMentor(context.Background(), 5, nil)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))
}
