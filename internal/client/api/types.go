package api

import (
	"fmt"
	"strings"
	"time"
)

// Role is a membership role within an account.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole normalizes and validates a role name.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleOwner, RoleAdmin, RoleStaff:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Account is an isolated business namespace (tenant).
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Membership grants an identity a role within an account.
type Membership struct {
	AccountID   string `json:"accountId"`
	AccountName string `json:"accountName,omitempty"`
	Role        Role   `json:"role"`
}

// Me is the identity record returned by GET auth/me, including the caller's
// account memberships.
type Me struct {
	UserID      string       `json:"userId"`
	Email       string       `json:"email"`
	Memberships []Membership `json:"memberships"`
}

// User is the local identity record returned by GET users/me. Fetching it
// also provisions the record server-side on first call.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Member is one entry of an account's member list.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role"`
}

// Invite is a single-use, time-limited grant for a specific email to join a
// specific account with a specific role. The token is both identifier and
// capability.
type Invite struct {
	ID          string    `json:"id,omitempty"`
	Token       string    `json:"token"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Account     Account   `json:"account"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsExpired   bool      `json:"isExpired"`
	AcceptURL   string    `json:"acceptUrl,omitempty"`
	RegisterURL string    `json:"registerUrl,omitempty"`
}

// AcceptResult is the response of POST invites/{token}/accept.
type AcceptResult struct {
	AccountID string `json:"accountId"`
	Role      Role   `json:"role"`
}

// ClientRecord is a business client of the active account.
type ClientRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateClientRequest carries only the non-empty fields of a new client;
// empty fields are omitted from the payload entirely.
type CreateClientRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateInviteRequest is the payload of POST accounts/{id}/invites.
type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type createAccountRequest struct {
	Name string `json:"name"`
}
