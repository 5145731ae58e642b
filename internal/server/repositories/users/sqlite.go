package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/dbx"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores timestamps as unix milliseconds and matches
// usernames and emails on their folded key columns.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteUserColumns = `id, username, password_hash, email, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	query :=
		`INSERT INTO users (id, username, username_key, password_hash, email, email_key, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		user.ID.String(), user.Username, foldKey(user.Username), user.PasswordHash,
		user.Email, foldKey(user.Email), toMillis(user.CreatedAt), nullMillis(user.UpdatedAt))
	if err != nil {
		return false, sqliteError(err)
	}
	return dbx.Applied(res)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + sqliteUserColumns + ` FROM users WHERE id = ?`
	return scanSQLiteUser(r.db.QueryRowContext(ctx, query, id.String()))
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + sqliteUserColumns + ` FROM users WHERE email_key = ?`
	return scanSQLiteUser(r.db.QueryRowContext(ctx, query, foldKey(email)))
}

func (r *SQLiteRepository) GetByCredentials(ctx context.Context, usernameOrEmail, digest string) (*models.User, error) {
	query :=
		`SELECT ` + sqliteUserColumns + ` FROM users
		 WHERE (username_key = ? OR email_key = ?) AND password_hash = ?
		 LIMIT 1`
	key := foldKey(usernameOrEmail)
	return scanSQLiteUser(r.db.QueryRowContext(ctx, query, key, key, digest))
}

func (r *SQLiteRepository) IsUsernameUnique(ctx context.Context, username string) (bool, error) {
	return sqliteNotExists(ctx, r.db, `SELECT COUNT(1) FROM users WHERE username_key = ?`, foldKey(username))
}

func (r *SQLiteRepository) IsEmailUnique(ctx context.Context, email string) (bool, error) {
	return sqliteNotExists(ctx, r.db, `SELECT COUNT(1) FROM users WHERE email_key = ?`, foldKey(email))
}

func (r *SQLiteRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	query :=
		`UPDATE users SET username = ?, username_key = ?, password_hash = ?, email = ?, email_key = ?, updated_at = ?
		 WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		user.Username, foldKey(user.Username), user.PasswordHash,
		user.Email, foldKey(user.Email), nullMillis(user.UpdatedAt), user.ID.String())
	if err != nil {
		return false, sqliteError(err)
	}
	return dbx.Applied(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return dbx.Applied(res)
}

func sqliteError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, se.Error())
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, err.Error())
	}
	return fmt.Errorf("db error: %w", err)
}

func scanSQLiteUser(row *sql.Row) (*models.User, error) {
	var (
		id        string
		createdAt int64
		updatedAt sql.NullInt64
	)
	user := &models.User{}

	err := row.Scan(&id, &user.Username, &user.PasswordHash, &user.Email, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("db error: bad user id %q: %w", id, err)
	}
	user.CreatedAt = fromMillis(createdAt)
	if updatedAt.Valid {
		t := fromMillis(updatedAt.Int64)
		user.UpdatedAt = &t
	}
	return user, nil
}

func sqliteNotExists(ctx context.Context, db dbx.DBTX, query string, args ...any) (bool, error) {
	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 0, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*t), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
