package users

import (
	"context"

	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. An email already in
	// use yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail returns common.ErrNotFound for an unknown email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
