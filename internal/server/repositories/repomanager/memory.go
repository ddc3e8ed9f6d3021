package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/casekeeper/internal/dbx"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/snapshots"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same process-local repositories
// regardless of the DBTX it is given. Data is lost on restart.
type InMemoryRepositoryManager struct {
	users     *users.MemoryRepository
	snapshots *snapshots.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		snapshots: snapshots.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Snapshots(dbx.DBTX) snapshots.Repository { return m.snapshots }
