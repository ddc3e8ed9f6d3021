package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/dbx"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

// PostgresRepository keeps snapshots in the snapshots table, one row per user.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, snap *models.Snapshot) error {
	query := `
		INSERT INTO snapshots (user_id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		RETURNING updated_at`

	if err := r.db.QueryRowContext(ctx, query, snap.UserID, snap.Data).Scan(&snap.UpdatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Snapshot, error) {
	query := `SELECT user_id, data, updated_at FROM snapshots WHERE user_id = $1`

	snap := &models.Snapshot{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&snap.UserID, &snap.Data, &snap.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return snap, nil
}
