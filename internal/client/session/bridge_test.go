package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestBridge_StartsUnauthenticated(t *testing.T) {
	b := NewBridge()
	assert.Equal(t, StatusUnauthenticated, b.Status())
	assert.Empty(t, b.Token())
	assert.Empty(t, b.Email())
}

func TestBridge_SetToken_AuthenticatesAndExtractsEmail(t *testing.T) {
	b := NewBridge()
	raw := signedToken(t, "alice@example.com", time.Now().Add(time.Hour))

	b.SetToken(raw)

	assert.Equal(t, StatusAuthenticated, b.Status())
	assert.Equal(t, raw, b.Token())
	assert.Equal(t, "alice@example.com", b.Email())
}

func TestBridge_SetToken_OpaqueTokenStillAuthenticates(t *testing.T) {
	b := NewBridge()

	b.SetToken("not-a-jwt")

	assert.Equal(t, StatusAuthenticated, b.Status())
	assert.Equal(t, "not-a-jwt", b.Token())
	assert.Empty(t, b.Email(), "email is best-effort only")
}

func TestBridge_EmptyTokenClears(t *testing.T) {
	b := NewBridge()
	b.SetToken(signedToken(t, "a@b.c", time.Now().Add(time.Hour)))

	b.SetToken("")

	assert.Equal(t, StatusUnauthenticated, b.Status())
	assert.Empty(t, b.Token())
	assert.Empty(t, b.Email())
}

func TestBridge_SubscribeSeesTransitions(t *testing.T) {
	b := NewBridge()
	ch := b.Subscribe()

	b.SetAuthenticating()
	b.SetToken(signedToken(t, "a@b.c", time.Now().Add(time.Hour)))
	b.Clear()

	assert.Equal(t, StatusAuthenticating, <-ch)
	assert.Equal(t, StatusAuthenticated, <-ch)
	assert.Equal(t, StatusUnauthenticated, <-ch)
}

func TestTokenClaims(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	raw := signedToken(t, "bob@example.com", exp)

	email, expiresAt, err := TokenClaims(raw)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
	assert.WithinDuration(t, exp, expiresAt, time.Second)
}

func TestTokenClaims_RejectsGarbage(t *testing.T) {
	_, _, err := TokenClaims("garbage")
	require.Error(t, err)
}
