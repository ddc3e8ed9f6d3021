package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for baseURL. A nil hc uses http.DefaultClient.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
}

type loadResponse struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Signup(ctx context.Context, email, password, name string) (models.AuthState, error) {
	return c.auth(ctx, "/auth/signup", signupRequest{Email: email, Password: password, Name: name}, email)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.AuthState, error) {
	return c.auth(ctx, "/auth/login", loginRequest{Email: email, Password: password}, email)
}

func (c *HTTPClient) auth(ctx context.Context, path string, body any, email string) (models.AuthState, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return models.AuthState{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		msg := readErrorMessage(resp.Body)
		if msg == "" {
			msg = defaultAuthMessage
		}
		return models.AuthState{}, &AuthError{Status: resp.StatusCode, Message: msg}
	}

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return models.AuthState{}, fmt.Errorf("decode %s response: %w", path, err)
	}
	if ar.AccessToken == "" {
		return models.AuthState{}, &AuthError{Status: resp.StatusCode, Message: "server returned no access token"}
	}
	return models.AuthState{AccessToken: ar.AccessToken, UserID: ar.UserID, Email: email}, nil
}

func (c *HTTPClient) SaveData(ctx context.Context, accessToken string, s models.Snapshot) error {
	body, err := s.Encode()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/data/save", accessToken, json.RawMessage(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return &SyncError{Op: "save", Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) LoadData(ctx context.Context, accessToken string) (*models.Snapshot, error) {
	resp, err := c.do(ctx, http.MethodGet, "/data/load", accessToken, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &SyncError{Op: "load", Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var lr loadResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, &SyncError{Op: "load", Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	if isEmptyPayload(lr.Data) {
		return nil, nil
	}

	s, err := models.DecodeSnapshot(lr.Data)
	if err != nil {
		return nil, &SyncError{Op: "load", Status: resp.StatusCode, Message: "malformed snapshot: " + err.Error()}
	}
	return &s, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(b, &er); err == nil {
		return er.Error
	}
	return ""
}

// isEmptyPayload treats null, {} and "" as "no remote data yet".
func isEmptyPayload(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	switch string(t) {
	case "", "null", "{}", `""`:
		return true
	}
	return false
}
