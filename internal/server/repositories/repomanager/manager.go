package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/casekeeper/internal/dbx"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/snapshots"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Snapshots(db dbx.DBTX) snapshots.Repository
}
