package idp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werkmate/werkmate-cli/internal/client/session"
	"github.com/werkmate/werkmate-cli/internal/common"
	"github.com/werkmate/werkmate-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func signedToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"email": email, "exp": exp.Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

// issuerStub is a minimal Keycloak-shaped issuer: a token endpoint and a
// logout endpoint, with the last received forms captured.
type issuerStub struct {
	t *testing.T

	accessToken  string
	refreshToken string
	tokenStatus  int

	lastTokenForm  url.Values
	lastLogoutForm url.Values
	tokenCalls     int
	logoutCalls    int
}

func (s *issuerStub) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(s.t, r.ParseForm())
		s.tokenCalls++
		s.lastTokenForm = r.PostForm
		if s.tokenStatus != 0 {
			w.WriteHeader(s.tokenStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  s.accessToken,
			"refresh_token": s.refreshToken,
			"expires_in":    300,
		})
	})
	mux.HandleFunc("POST /protocol/openid-connect/logout", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(s.t, r.ParseForm())
		s.logoutCalls++
		s.lastLogoutForm = r.PostForm
		w.WriteHeader(http.StatusNoContent)
	})
	return httptest.NewServer(mux)
}

func TestPasswordSignIn_PublishesTokenToBridge(t *testing.T) {
	stub := &issuerStub{t: t, accessToken: signedToken(t, "alice@example.com", time.Now().Add(time.Hour))}
	srv := stub.server()
	t.Cleanup(srv.Close)

	bridge := session.NewBridge()
	p := NewProvider(srv.URL, "werkmate-cli", "127.0.0.1:0", bridge, testLogger())

	err := p.PasswordSignIn(context.Background(), "alice@example.com", []byte("s3cret"))
	require.NoError(t, err)

	assert.Equal(t, session.StatusAuthenticated, bridge.Status())
	assert.Equal(t, "alice@example.com", bridge.Email())

	assert.Equal(t, "password", stub.lastTokenForm.Get("grant_type"))
	assert.Equal(t, "werkmate-cli", stub.lastTokenForm.Get("client_id"))
	assert.Equal(t, "alice@example.com", stub.lastTokenForm.Get("username"))
	assert.Equal(t, "s3cret", stub.lastTokenForm.Get("password"))
}

func TestPasswordSignIn_BadCredentials_ClearsBridge(t *testing.T) {
	stub := &issuerStub{t: t, tokenStatus: http.StatusUnauthorized}
	srv := stub.server()
	t.Cleanup(srv.Close)

	bridge := session.NewBridge()
	p := NewProvider(srv.URL, "werkmate-cli", "127.0.0.1:0", bridge, testLogger())

	err := p.PasswordSignIn(context.Background(), "alice@example.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, session.StatusUnauthenticated, bridge.Status())
}

func TestSignIn_BrowserFlow_ExchangesCallbackCode(t *testing.T) {
	stub := &issuerStub{t: t, accessToken: signedToken(t, "alice@example.com", time.Now().Add(time.Hour))}
	srv := stub.server()
	t.Cleanup(srv.Close)

	bridge := session.NewBridge()
	p := NewProvider(srv.URL, "werkmate-cli", "127.0.0.1:0", bridge, testLogger())

	// Play the browser: follow the authorize URL's redirect_uri with a code.
	p.notify = func(authorizeURL string) {
		go func() {
			u, err := url.Parse(authorizeURL)
			require.NoError(t, err)
			q := u.Query()
			assert.Equal(t, "code", q.Get("response_type"))
			assert.Equal(t, "invited@example.com", q.Get("login_hint"))
			assert.Equal(t, "login", q.Get("kc_action"))

			cb := q.Get("redirect_uri") + "?state=" + url.QueryEscape(q.Get("state")) + "&code=abc123"
			resp, err := http.Get(cb)
			require.NoError(t, err)
			resp.Body.Close()
		}()
	}

	err := p.SignIn(context.Background(), SignInOptions{LoginHint: "invited@example.com", ActionHint: "login"})
	require.NoError(t, err)

	assert.Equal(t, session.StatusAuthenticated, bridge.Status())
	assert.Equal(t, "authorization_code", stub.lastTokenForm.Get("grant_type"))
	assert.Equal(t, "abc123", stub.lastTokenForm.Get("code"))
	assert.NotEmpty(t, stub.lastTokenForm.Get("redirect_uri"))
}

func TestSignIn_CancelledContext_Unblocks(t *testing.T) {
	bridge := session.NewBridge()
	p := NewProvider("http://127.0.0.1:1", "werkmate-cli", "127.0.0.1:0", bridge, testLogger())
	p.notify = func(string) {} // nobody opens the browser

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := p.SignIn(ctx, SignInOptions{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.StatusUnauthenticated, bridge.Status())
}

func TestSignOut_RevokesRefreshTokenAndClearsBridge(t *testing.T) {
	stub := &issuerStub{
		t:            t,
		accessToken:  signedToken(t, "alice@example.com", time.Now().Add(time.Hour)),
		refreshToken: "refresh-1",
	}
	srv := stub.server()
	t.Cleanup(srv.Close)

	bridge := session.NewBridge()
	p := NewProvider(srv.URL, "werkmate-cli", "127.0.0.1:0", bridge, testLogger())
	require.NoError(t, p.PasswordSignIn(context.Background(), "alice@example.com", []byte("pw")))

	err := p.SignOut(context.Background(), SignOutOptions{CallbackURL: "http://localhost/login"})
	require.NoError(t, err)

	assert.Equal(t, session.StatusUnauthenticated, bridge.Status())
	assert.Equal(t, 1, stub.logoutCalls)
	assert.Equal(t, "refresh-1", stub.lastLogoutForm.Get("refresh_token"))
	assert.Equal(t, "http://localhost/login", stub.lastLogoutForm.Get("post_logout_redirect_uri"))
}

func TestSignOut_WithoutSession_IsNoop(t *testing.T) {
	stub := &issuerStub{t: t}
	srv := stub.server()
	t.Cleanup(srv.Close)

	bridge := session.NewBridge()
	p := NewProvider(srv.URL, "werkmate-cli", "127.0.0.1:0", bridge, testLogger())

	require.NoError(t, p.SignOut(context.Background(), SignOutOptions{}))
	assert.Equal(t, 0, stub.logoutCalls)
}
