package shift

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/psqlbuilder"
)

const tableName = "shifts"

var columns = []string{
	"id",
	"shift_date",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий смен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает смену
func (r *Repository) Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("shift_date", "start_time", "end_time").
		Values(domain.DayKey(s.Date), s.StartTime, s.EndTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает смену по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanShift(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shift: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListByDateRange получает смены за период [from, to] включительно, по дате и времени начала
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"shift_date": domain.DayKey(from)}).
		Where(squirrel.LtOrEq{"shift_date": domain.DayKey(to)}).
		OrderBy("shift_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDateRange - scan row: %w", ErrScanRow, err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - rows error: %w", ErrScanRow, err)
	}

	return shifts, nil
}

// Delete удаляет смену
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShiftNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanShift(row scanner) (*domain.Shift, error) {
	var s domain.Shift
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	s.Date = domain.NormalizeDate(s.Date)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
