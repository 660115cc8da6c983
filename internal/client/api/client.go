// Package api implements the typed HTTP client for the WerkMate API.
//
// A single shared Client serves every flow: the bearer token and the active
// account id are read from the injected sources at send time, so token and
// tenant changes are reflected without reconstructing the client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/werkmate/werkmate-cli/internal/common"
	"github.com/werkmate/werkmate-cli/internal/logging"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// AccountSource yields the active account id, or "" before bootstrap.
type AccountSource interface {
	AccountID() string
}

type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	accounts AccountSource
	log      logging.Logger
}

// New builds a Client for the given base URL. tokens and accounts are read on
// every request; either may return "" and the corresponding header is then
// omitted.
func New(baseURL string, timeout time.Duration, tokens TokenSource, accounts AccountSource, log logging.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		accounts: accounts,
		log:      log,
	}
}

// do executes one API request. A non-2xx response yields an *HTTPError;
// transport failures map onto common.ErrUnavailable. When out is non-nil the
// response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.tokens.Token(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+t)
	}
	if acc := c.accounts.AccountID(); acc != "" {
		req.Header.Set(common.AccountIDHeaderName, acc)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		c.log.Warn(ctx, "unexpected status", "method", method, "path", path,
			"request_id", reqID, "status", resp.StatusCode)
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListClients fetches the active account's clients.
func (c *Client) ListClients(ctx context.Context) ([]ClientRecord, error) {
	var res []ClientRecord
	if err := c.do(ctx, http.MethodGet, "clients", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateClient creates a client record from the non-empty request fields.
func (c *Client) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientRecord, error) {
	var res ClientRecord
	if err := c.do(ctx, http.MethodPost, "clients", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me fetches the caller's identity together with its account memberships.
func (c *Client) Me(ctx context.Context) (*Me, error) {
	var res Me
	if err := c.do(ctx, http.MethodGet, "auth/me", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EnsureUser fetches the caller's local user record, provisioning it
// server-side on first call.
func (c *Client) EnsureUser(ctx context.Context) (*User, error) {
	var res User
	if err := c.do(ctx, http.MethodGet, "users/me", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateAccount provisions a new account with the given display name.
func (c *Client) CreateAccount(ctx context.Context, name string) (*Account, error) {
	var res Account
	if err := c.do(ctx, http.MethodPost, "accounts", createAccountRequest{Name: name}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListMembers fetches the member list of an account.
func (c *Client) ListMembers(ctx context.Context, accountID string) ([]Member, error) {
	var res []Member
	path := "accounts/" + url.PathEscape(accountID) + "/members"
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateInvite creates an invite for email to join accountID with role.
func (c *Client) CreateInvite(ctx context.Context, accountID string, req CreateInviteRequest) (*Invite, error) {
	var res Invite
	path := "accounts/" + url.PathEscape(accountID) + "/invites"
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetInvite resolves an invite token to its record.
func (c *Client) GetInvite(ctx context.Context, token string) (*Invite, error) {
	var res Invite
	path := "invites/" + url.PathEscape(token)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SendInviteEmail re-triggers the invite email. Idempotent; does not mutate
// the invite itself.
func (c *Client) SendInviteEmail(ctx context.Context, token string) error {
	path := "invites/" + url.PathEscape(token) + "/actions-email"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// AcceptInvite consumes the invite, establishing membership for the
// authenticated identity.
func (c *Client) AcceptInvite(ctx context.Context, token string) (*AcceptResult, error) {
	var res AcceptResult
	path := "invites/" + url.PathEscape(token) + "/accept"
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
