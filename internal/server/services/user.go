// Package services contains the sync backend's business logic. UserService
// handles signup and login; DataService stores and returns snapshots.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/server/auth"
	"github.com/dmitrijs2005/casekeeper/internal/server/config"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/repomanager"
)

const minPasswordLen = 6

// Session is what a successful signup or login hands back to the client.
type Session struct {
	AccessToken string
	UserID      string
}

// UserService provides authentication-related operations:
// - Signup: create a user with a bcrypt password hash
// - Login: verify credentials and mint an access token
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	cost          int
	dummyHash     func() []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	s := &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenTTL,
		cost:          bcrypt.DefaultCost,
	}
	s.dummyHash = sync.OnceValue(func() []byte {
		h, _ := bcrypt.GenerateFromPassword([]byte("casekeeper-dummy"), s.cost)
		return h
	})
	return s
}

// Signup registers email with password and returns a session for the new
// user. Malformed input yields common.ErrValidation; a taken email yields
// common.ErrAlreadyExists.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrValidation)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash}
	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.session(user.ID)
}

// Login checks password against the stored hash. Unknown emails and wrong
// passwords both yield common.ErrUnauthorized after a comparable amount of
// bcrypt work.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	return s.session(user.ID)
}

// UserIDFromToken verifies an access token minted by this service.
func (s *UserService) UserIDFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) session(userID string) (*Session, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return &Session{AccessToken: token, UserID: userID}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email address is invalid", common.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLen)
	}
	return nil
}
