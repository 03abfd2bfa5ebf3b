package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorBookingService/pkg/psqlbuilder"
)

const table = "availability_rules"

// Repository репозиторий правил доступности менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMentorID возвращает все правила ментора в порядке создания
func (r *Repository) GetByMentorID(ctx context.Context, mentorID int64) ([]domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"mentor_id",
		"weekdays",
		"start_minute",
		"end_minute",
		"slot_granularity_minutes",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WeeklyAvailability, 0)
	for rows.Next() {
		var rule domain.WeeklyAvailability
		var weekdays []int64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.MentorID,
			pq.Array(&weekdays),
			&rule.StartTime,
			&rule.EndTime,
			&rule.SlotGranularityMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMentorID - scan row: %w", ErrScanRow, err)
		}

		rule.Weekdays = toWeekdays(weekdays)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMentorID - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceForMentor удаляет все правила ментора и сохраняет новые.
// Должен вызываться внутри транзакции.
func (r *Repository) ReplaceForMentor(ctx context.Context, mentorID int64, rules []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForMentor - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForMentor - execute delete: %w", ErrExecQuery, err)
	}

	saved := make([]domain.WeeklyAvailability, 0, len(rules))
	for _, rule := range rules {
		query, args, err := psqlbuilder.Insert(table).
			Columns(
				"mentor_id",
				"weekdays",
				"start_minute",
				"end_minute",
				"slot_granularity_minutes",
			).
			Values(
				mentorID,
				pq.Array(fromWeekdays(rule.Weekdays)),
				rule.StartTime,
				rule.EndTime,
				rule.SlotGranularityMinutes,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceForMentor - build insert query: %w", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ReplaceForMentor - execute insert: %w", ErrExecQuery, err)
		}

		rule.MentorID = mentorID
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		saved = append(saved, rule)
	}

	return saved, nil
}

func toWeekdays(values []int64) []time.Weekday {
	days := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		days = append(days, time.Weekday(v))
	}
	return days
}

func fromWeekdays(days []time.Weekday) []int64 {
	values := make([]int64, 0, len(days))
	for _, d := range days {
		values = append(values, int64(d))
	}
	return values
}
