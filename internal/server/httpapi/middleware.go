package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

const userIDKey = "userID"

// bearerAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token's user id for the handlers.
func bearerAuth(users UserAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing bearer token")
		}

		uid, err := users.UserIDFromToken(token)
		if err != nil {
			return err
		}
		c.Locals(userIDKey, uid)
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	uid, _ := c.Locals(userIDKey).(string)
	return uid
}

// requestLogger writes one line per request. Errors are classified the same
// way the error handler will report them.
func requestLogger(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = classify(err)
		}
		logger.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
		)
		return err
	}
}
