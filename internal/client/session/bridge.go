// Package session holds the page-lifetime session state: status, bearer
// token and subject email. The identity-provider integration is the sole
// writer; the API client and the bootstrap read it at send time.
package session

import "sync"

// Status is the session lifecycle state.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
)

// Bridge is the synchronous view of the current session. All methods are
// safe for concurrent use. Status transitions are published to subscribers
// with a non-blocking send, so a slow subscriber can miss intermediate
// transitions but never blocks the writer.
type Bridge struct {
	mu     sync.RWMutex
	status Status
	token  string
	email  string
	subs   []chan Status
}

func NewBridge() *Bridge {
	return &Bridge{status: StatusUnauthenticated}
}

// SetAuthenticating marks a sign-in in progress.
func (b *Bridge) SetAuthenticating() {
	b.transition(StatusAuthenticating, "", "")
}

// SetToken stores a fresh access token and flips the session to
// authenticated. The subject email is read from the token's claims on a
// best-effort basis; the token is never validated here, that is the
// provider's job. An empty token clears the session instead.
func (b *Bridge) SetToken(token string) {
	if token == "" {
		b.Clear()
		return
	}
	email, _, err := TokenClaims(token)
	if err != nil {
		email = ""
	}
	b.transition(StatusAuthenticated, token, email)
}

// Clear drops the token and returns to unauthenticated.
func (b *Bridge) Clear() {
	b.transition(StatusUnauthenticated, "", "")
}

// Token returns the current bearer token, or "" when unauthenticated.
// Implements the API client's token source.
func (b *Bridge) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// Status returns the current session status.
func (b *Bridge) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// Email returns the subject email from the current token's claims, or "".
func (b *Bridge) Email() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.email
}

// Subscribe returns a channel receiving status transitions. The channel is
// buffered; transitions that arrive while the buffer is full are dropped.
func (b *Bridge) Subscribe() <-chan Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Status, 8)
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Bridge) transition(status Status, token, email string) {
	b.mu.Lock()
	changed := b.status != status || b.token != token
	b.status = status
	b.token = token
	b.email = email
	subs := b.subs
	b.mu.Unlock()

	if !changed {
		return
	}
	for _, ch := range subs {
		select {
		case ch <- status:
		default:
		}
	}
}
