package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/snapshots"
)

// DataService stores one opaque JSON snapshot per user.
type DataService struct {
	repo snapshots.Repository
}

// NewDataService uses the table-backed snapshot repository.
func NewDataService(db *sql.DB, m repomanager.RepositoryManager) *DataService {
	return &DataService{repo: m.Snapshots(db)}
}

// NewDataServiceWithRepository uses repo, e.g. the S3 backend.
func NewDataServiceWithRepository(repo snapshots.Repository) *DataService {
	return &DataService{repo: repo}
}

// Save replaces the user's snapshot. data must be a JSON object.
func (s *DataService) Save(ctx context.Context, userID string, data []byte) error {
	if !isJSONObject(data) {
		return fmt.Errorf("%w: snapshot must be a JSON object", common.ErrValidation)
	}
	if err := s.repo.Put(ctx, &models.Snapshot{UserID: userID, Data: data}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the user's snapshot, or nil when nothing was ever saved.
func (s *DataService) Load(ctx context.Context, userID string) ([]byte, error) {
	snap, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap.Data, nil
}

func isJSONObject(data []byte) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(data, &obj) == nil && obj != nil
}
