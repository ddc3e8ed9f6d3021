package client

import (
	"context"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

type Client interface {
	Signup(ctx context.Context, email, password, name string) (models.AuthState, error)
	Login(ctx context.Context, email, password string) (models.AuthState, error)
	SaveData(ctx context.Context, accessToken string, s models.Snapshot) error
	// LoadData returns nil, nil when the server holds no data for the user yet.
	LoadData(ctx context.Context, accessToken string) (*models.Snapshot, error)
}
