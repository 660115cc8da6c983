// Package common contains shared constants and sentinel errors used across
// WerkMate client components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound
	// API requests.
	AuthorizationHeaderName = "Authorization"

	// AccountIDHeaderName carries the active tenant id on outbound API
	// requests. Present only once an account has been resolved.
	AccountIDHeaderName = "x-account-id"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-Id"

	// AccountIDStateKey is the durable local storage key holding the active
	// account id. Written only by the bootstrap and invite-accept flows.
	AccountIDStateKey = "accountId"

	// AccountNameStateKey holds the active account's display name, written
	// together with the id in one transaction.
	AccountNameStateKey = "accountName"
)
