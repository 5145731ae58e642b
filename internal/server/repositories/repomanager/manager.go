package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/usermanager/internal/dbx"
	"github.com/dmitrijs2005/usermanager/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and migrates the
// schema of the SQL backend it represents.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
