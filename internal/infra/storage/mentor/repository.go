package mentor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorBookingService/pkg/psqlbuilder"
)

const table = "mentors"

// Repository репозиторий профилей менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория менторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var columns = []string{
	"id",
	"display_name",
	"timezone",
	"status",
	"created_at",
	"updated_at",
}

// GetByID получает профиль ментора.
// Внутри транзакции строка блокируется (FOR UPDATE): так параллельные
// бронирования одного ментора выполняются последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	m, err := scanMentor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan mentor: %w", ErrScanRow, err)
	}

	return m, nil
}

// List возвращает каталог менторов по фильтру, упорядоченный по ID
func (r *Repository) List(ctx context.Context, filter domain.MentorsFilter) ([]*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	mentors := make([]*domain.Mentor, 0)
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		mentors = append(mentors, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return mentors, nil
}

func buildListQuery(filter domain.MentorsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	return selectBuilder
}

// Upsert создает профиль ментора или обновляет существующий
func (r *Repository) Upsert(ctx context.Context, m *domain.Mentor) (*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "display_name", "timezone", "status").
		Values(m.ID, m.DisplayName, m.Timezone, m.Status).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			timezone = EXCLUDED.timezone,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMentor(row rowScanner) (*domain.Mentor, error) {
	var m domain.Mentor
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&m.ID,
		&m.DisplayName,
		&m.Timezone,
		&m.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}
