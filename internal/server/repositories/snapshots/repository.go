// Package snapshots stores each user's opaque client snapshot, either in the
// PostgreSQL snapshots table or as objects in an S3-compatible bucket.
package snapshots

import (
	"context"

	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

type Repository interface {
	// Put replaces the user's snapshot.
	Put(ctx context.Context, snap *models.Snapshot) error
	// Get returns common.ErrNotFound when the user never saved.
	Get(ctx context.Context, userID string) (*models.Snapshot, error)
}
