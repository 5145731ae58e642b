package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/dbx"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pgUserColumns = `id, username, password_hash, email, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	query :=
		`INSERT INTO users (id, username, username_key, password_hash, email, email_key, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, foldKey(user.Username), user.PasswordHash,
		user.Email, foldKey(user.Email), user.CreatedAt, nullTime(user.UpdatedAt))
	if err != nil {
		return false, pgError(err)
	}
	return dbx.Applied(res)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + pgUserColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + pgUserColumns + ` FROM users WHERE email_key = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, foldKey(email)))
}

func (r *PostgresRepository) GetByCredentials(ctx context.Context, usernameOrEmail, digest string) (*models.User, error) {
	query :=
		`SELECT ` + pgUserColumns + ` FROM users
		 WHERE (username_key = $1 OR email_key = $1) AND password_hash = $2
		 LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, query, foldKey(usernameOrEmail), digest))
}

func (r *PostgresRepository) IsUsernameUnique(ctx context.Context, username string) (bool, error) {
	query := `SELECT NOT EXISTS (SELECT 1 FROM users WHERE username_key = $1)`
	return queryBool(ctx, r.db, query, foldKey(username))
}

func (r *PostgresRepository) IsEmailUnique(ctx context.Context, email string) (bool, error) {
	query := `SELECT NOT EXISTS (SELECT 1 FROM users WHERE email_key = $1)`
	return queryBool(ctx, r.db, query, foldKey(email))
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	query :=
		`UPDATE users SET username = $2, username_key = $3, password_hash = $4, email = $5, email_key = $6, updated_at = $7
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, foldKey(user.Username), user.PasswordHash,
		user.Email, foldKey(user.Email), nullTime(user.UpdatedAt))
	if err != nil {
		return false, pgError(err)
	}
	return dbx.Applied(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return dbx.Applied(res)
}

// pgError turns a unique violation into common.ErrorAlreadyExists.
func pgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var updated sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	if updated.Valid {
		t := updated.Time.UTC()
		user.UpdatedAt = &t
	}
	return user, nil
}

func queryBool(ctx context.Context, db dbx.DBTX, query string, args ...any) (bool, error) {
	var v bool
	if err := db.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}
