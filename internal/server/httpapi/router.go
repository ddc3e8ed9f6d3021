package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitrijs2005/casekeeper/internal/logging"
	"github.com/dmitrijs2005/casekeeper/internal/server/services"
)

// MaxBodyBytes caps request bodies, snapshots included.
const MaxBodyBytes = 16 << 20

// UserAPI is the account side of the backend.
type UserAPI interface {
	Signup(ctx context.Context, email, password, name string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	UserIDFromToken(token string) (string, error)
}

// DataAPI stores one snapshot per user.
type DataAPI interface {
	Save(ctx context.Context, userID string, data []byte) error
	Load(ctx context.Context, userID string) ([]byte, error)
}

// NewRouter builds the fiber app serving the sync API.
func NewRouter(users UserAPI, data DataAPI, logger logging.Logger) *fiber.App {
	if logger == nil {
		logger = logging.Nop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(logger),
		BodyLimit:             MaxBodyBytes,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestLogger(logger))

	h := &handler{users: users, data: data}

	app.Get("/healthz", h.health)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", h.signup)
	authGroup.Post("/login", h.login)

	dataGroup := app.Group("/data", bearerAuth(users))
	dataGroup.Post("/save", h.save)
	dataGroup.Get("/load", h.load)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	return app
}
