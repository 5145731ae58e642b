package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/filex"
	"github.com/dmitrijs2005/usermanager/internal/server/repositories/users"
)

// Kind names a storage backend.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
	KindMemory   Kind = "memory"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"

// Storage is an opened backend: its user store plus the handle needed for
// readiness checks and shutdown. db is nil for the in-memory backend.
type Storage struct {
	Kind  Kind
	Users users.Repository
	db    *sql.DB
}

// ParseDSN picks the backend for dsn and returns the driver-level DSN.
//
//	postgres://... or postgresql://...  -> Postgres (pgx)
//	sqlite:<path> or file:<path>        -> SQLite (modernc)
//	memory                              -> in-process map
func ParseDSN(dsn string) (Kind, string, error) {
	switch {
	case dsn == "memory" || dsn == "mem":
		return KindMemory, "", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return KindPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return KindSQLite, withPragmas(strings.TrimPrefix(dsn, "sqlite:")), nil
	case strings.HasPrefix(dsn, "file:"):
		return KindSQLite, withPragmas(dsn), nil
	}
	return "", "", fmt.Errorf("unsupported database DSN %q", dsn)
}

func withPragmas(path string) string {
	if path == "" {
		return path
	}
	if strings.Contains(path, "_pragma=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}

// sqlitePath strips the file: scheme and query from a driver DSN.
func sqlitePath(driverDSN string) string {
	p := strings.TrimPrefix(driverDSN, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to the backend named by dsn, migrates it and returns the
// ready Storage.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	kind, driverDSN, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if kind == KindMemory {
		return &Storage{Kind: kind, Users: users.NewMemoryRepository()}, nil
	}

	var (
		m      RepositoryManager
		driver string
	)
	switch kind {
	case KindPostgres:
		m, driver = NewPostgresRepositoryManager(), "pgx"
	default:
		if driverDSN == "" {
			return nil, fmt.Errorf("sqlite DSN has no path")
		}
		if _, err := filex.EnsureParentDir(sqlitePath(driverDSN)); err != nil {
			return nil, fmt.Errorf("sqlite directory error: %w", err)
		}
		m, driver = NewSQLiteRepositoryManager(), "sqlite"
	}

	db, err := sqlOpen(driver, driverDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &Storage{Kind: kind, Users: m.Users(db), db: db}, nil
}

// Ping reports whether the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.db == nil {
		return ctx.Err()
	}
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
