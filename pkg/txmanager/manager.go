// Package txmanager управляет транзакциями: кладёт транзакцию в context,
// переиспользует её во вложенных вызовах и повторяет сериализуемые
// транзакции при конфликте сериализации.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
)

// DefaultMaxRetries количество попыток для сериализуемых транзакций
const DefaultMaxRetries = 3

// serializationFailureCode SQLSTATE ошибки сериализации в PostgreSQL
const serializationFailureCode = "40001"

var (
	ErrBeginTx              = errors.New("txmanager: failed to begin transaction")
	ErrCommitTx             = errors.New("txmanager: failed to commit transaction")
	ErrSerializationFailure = errors.New("txmanager: serialization failure, retries exhausted")
)

// TransactionManager выполняет функции внутри транзакции
type TransactionManager struct {
	db         dbmetrics.TxBeginner
	maxRetries int
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, maxRetries: DefaultMaxRetries}
}

// WithMaxRetries задает количество попыток для DoSerializable
func (m *TransactionManager) WithMaxRetries(n int) *TransactionManager {
	if n < 1 {
		n = 1
	}
	m.maxRetries = n
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При ошибке сериализации fn повторяется до maxRetries раз,
// после чего возвращается ErrSerializationFailure.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов - работаем в уже открытой транзакции без повторов
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt < m.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !IsSerializationFailure(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailureCode
	}
	return false
}
