package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/psqlbuilder"
)

const (
	tableName = "admins"

	codeUniqueViolation = "23505"
)

// Repository репозиторий администраторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает администратора с уже посчитанным хешем пароля
func (r *Repository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("name", "email", "password_hash").
		Values(a.Name, strings.ToLower(a.Email), a.PasswordHash).
		Suffix("RETURNING id, email, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Email, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time

	return a, nil
}

// GetByEmail получает администратора по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": strings.ToLower(email)})
}

// GetByID получает администратора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "password_hash", "created_at").
		From(tableName).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var a domain.Admin
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan admin: %w", ErrExecQuery, op, err)
	}

	a.CreatedAt = createdAt.Time

	return &a, nil
}
