package snapshots

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

// MemoryRepository keeps snapshots in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Snapshot
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]models.Snapshot{}}
}

func (r *MemoryRepository) Put(_ context.Context, snap *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap.UpdatedAt = time.Now().UTC()
	r.items[snap.UserID] = models.Snapshot{UserID: snap.UserID, Data: slices.Clone(snap.Data), UpdatedAt: snap.UpdatedAt}
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, userID string) (*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	s.Data = slices.Clone(s.Data)
	return &s, nil
}
