package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/psqlbuilder"
)

const tableName = "appointments"

var columns = []string{
	"id",
	"client_id",
	"service_type",
	"add_ons",
	"quoted_price",
	"estimated_hours",
	"status",
	"appointment_date",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на уборку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Вызывается из usecase создания записи внутри транзакции, где уже взята блокировка дня (LockDate)
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	addOns := a.AddOns
	if addOns == nil {
		addOns = []string{}
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"client_id",
			"service_type",
			"add_ons",
			"quoted_price",
			"estimated_hours",
			"status",
			"appointment_date",
			"start_time",
			"end_time",
		).
		Values(
			a.ClientID,
			a.ServiceType,
			pq.Array(addOns),
			a.QuotedPrice,
			a.EstimatedHours,
			a.Status,
			domain.DayKey(a.Date),
			a.StartTime,
			a.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
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

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	// Смена статуса читает запись в транзакции, блокируем строку до коммита
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// ListActiveByDateRange получает активные записи (Pending, Confirmed) за период [from, to] включительно
// Используется для расчёта свободных слотов
func (r *Repository) ListActiveByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"appointment_date": domain.DayKey(from)}).
		Where(squirrel.LtOrEq{"appointment_date": domain.DayKey(to)}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("appointment_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListActiveByDateRange", query, args)
}

// ListByDate получает активные записи за один день
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"appointment_date": domain.DayKey(date)}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByDate", query, args)
}

// List получает записи для админки с фильтрацией по статусу, периоду и клиенту
// Для периода сортировка по дате и времени (сначала ближайшие)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": domain.DayKey(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": domain.DayKey(*filter.EndDate)})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	query, args, err := selectBuilder.OrderBy("appointment_date ASC, start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// HasActiveOnDate проверяет, есть ли активные записи на день
func (r *Repository) HasActiveOnDate(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"appointment_date": domain.DayKey(date)}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveOnDate - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// LockDate берёт транзакционную advisory-блокировку на календарный день
// Все операции записи по одному дню (создание записи, удаление смены) выполняются последовательно.
// Блокировка снимается на commit/rollback, вне транзакции вызов бессмысленен
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockDate - called outside of transaction", ErrExecQuery)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", DateLockKey(date)); err != nil {
		return fmt.Errorf("%w: LockDate - execute: %w", ErrExecQuery, err)
	}

	return nil
}

// DateLockKey ключ advisory-блокировки для дня
func DateLockKey(date time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("appointments:" + domain.DayKey(date)))
	return int64(h.Sum64())
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return appointments, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row scanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var addOns pq.StringArray
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ServiceType,
		&addOns,
		&a.QuotedPrice,
		&a.EstimatedHours,
		&status,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.AddOns = []string(addOns)
	a.Status = domain.AppointmentStatus(status)
	a.Date = domain.NormalizeDate(a.Date)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func activeStatusStrings() []string {
	out := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
