package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorBookingService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"mentor_id",
	"student_id",
	"scheduled_start",
	"duration_minutes",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую встречу.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"mentor_id",
			"student_id",
			"scheduled_start",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			a.MentorID,
			a.StudentID,
			a.ScheduledStart.UTC(),
			a.DurationMinutes,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает встречу по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
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

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// GetActiveInRange возвращает неотменённые встречи ментора,
// начинающиеся в интервале [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное
// бронирование того же дня дождалось коммита.
func (r *Repository) GetActiveInRange(ctx context.Context, mentorID int64, from, to time.Time) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"scheduled_start": from.UTC()}).
		Where(squirrel.Lt{"scheduled_start": to.UTC()}).
		OrderBy("scheduled_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	list, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Appointment, 0, len(list))
	for _, a := range list {
		result = append(result, *a)
	}
	return result, nil
}

// List возвращает встречи по фильтру (ментор и/или студент), новые сверху
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
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

	return scanAppointments(rows)
}

func buildListQuery(filter domain.AppointmentsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.MentorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mentor_id": *filter.MentorID})
	}
	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_start": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start": filter.To.UTC()})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_start DESC", "id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	return selectBuilder
}

// UpdateStatus переводит встречу из статуса from в статус to.
// Для cancelled сохраняется причина и время отмены, для completed - время завершения.
// Если статус уже не равен from, возвращается ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	switch to {
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.MentorID,
		&a.StudentID,
		&a.ScheduledStart,
		&a.DurationMinutes,
		&a.Status,
		&a.Notes,
		&a.CancellationReason,
		&a.CancelledAt,
		&a.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ScheduledStart = a.ScheduledStart.UTC()
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс встреч
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
