package httpapi

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type handler struct {
	users UserAPI
	data  DataAPI
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
}

type loadResponse struct {
	Data json.RawMessage `json:"data"`
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *handler) signup(c *fiber.Ctx) error {
	req, err := decodeCredentials(c)
	if err != nil {
		return err
	}
	sess, err := h.users.Signup(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse{AccessToken: sess.AccessToken, UserID: sess.UserID})
}

func (h *handler) login(c *fiber.Ctx) error {
	req, err := decodeCredentials(c)
	if err != nil {
		return err
	}
	sess, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(sessionResponse{AccessToken: sess.AccessToken, UserID: sess.UserID})
}

func (h *handler) save(c *fiber.Ctx) error {
	// fiber reuses the request buffer once the handler returns
	body := slices.Clone(c.Body())
	if err := h.data.Save(c.UserContext(), userID(c), body); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *handler) load(c *fiber.Ctx) error {
	data, err := h.data.Load(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(loadResponse{Data: json.RawMessage(data)})
}

func decodeCredentials(c *fiber.Ctx) (credentialsRequest, error) {
	var req credentialsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, nil
}
