package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

// classify maps an error to its HTTP status and the message shown to users.
func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, common.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
		return fiber.StatusBadRequest, msg
	case errors.Is(err, common.ErrAlreadyExists):
		return fiber.StatusConflict, "An account with this email already exists"
	case errors.Is(err, common.ErrUnauthorized):
		return fiber.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized, "Invalid or expired token"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := classify(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(errorResponse{Error: msg})
	}
}
