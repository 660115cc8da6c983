// Package idp integrates the external OIDC identity provider (Keycloak
// style endpoint layout). It is the sole writer of the session bridge:
// sign-in and token refresh push fresh tokens in, sign-out clears it.
// Nothing else in the client knows about provider endpoints or refresh.
package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/werkmate/werkmate-cli/internal/client/session"
	"github.com/werkmate/werkmate-cli/internal/common"
	"github.com/werkmate/werkmate-cli/internal/logging"
)

// refreshSkew is how long before expiry a token is renewed.
const refreshSkew = 30 * time.Second

// SignInOptions carries the optional hints of a sign-in request.
type SignInOptions struct {
	// LoginHint pre-fills the provider's login form (e.g. the invite email).
	LoginHint string
	// ActionHint asks the provider for a specific flow, e.g. "login".
	// Forwarded as kc_action.
	ActionHint string
}

// SignOutOptions carries the optional post-logout redirect.
type SignOutOptions struct {
	// CallbackURL is passed as post_logout_redirect_uri when set.
	CallbackURL string
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Provider drives browser and direct-grant sign-in against the identity
// provider and keeps the session bridge current.
type Provider struct {
	issuerURL    string
	clientID     string
	callbackAddr string
	http         *http.Client
	bridge       *session.Bridge
	log          logging.Logger

	// notify surfaces the URL the operator must open for browser sign-in.
	// Replaced in tests.
	notify func(url string)

	mu            sync.Mutex
	refreshToken  string
	refreshCancel context.CancelFunc
}

func NewProvider(issuerURL, clientID, callbackAddr string, bridge *session.Bridge, log logging.Logger) *Provider {
	return &Provider{
		issuerURL:    strings.TrimRight(issuerURL, "/"),
		clientID:     clientID,
		callbackAddr: callbackAddr,
		http:         &http.Client{Timeout: 30 * time.Second},
		bridge:       bridge,
		log:          log,
		notify:       func(u string) { fmt.Println("Open this URL in your browser to sign in:\n  " + u) },
	}
}

func (p *Provider) authorizeEndpoint() string {
	return p.issuerURL + "/protocol/openid-connect/auth"
}

func (p *Provider) tokenEndpoint() string {
	return p.issuerURL + "/protocol/openid-connect/token"
}

func (p *Provider) logoutEndpoint() string {
	return p.issuerURL + "/protocol/openid-connect/logout"
}

// SignIn runs the browser-based authorization-code flow: a local listener
// receives the provider callback while the operator completes the flow in a
// browser. Blocks until the exchange finishes, ctx is cancelled, or the
// callback fails.
func (p *Provider) SignIn(ctx context.Context, opts SignInOptions) error {
	p.bridge.SetAuthenticating()

	code, redirectURI, err := p.awaitCallback(ctx, opts)
	if err != nil {
		p.bridge.Clear()
		return err
	}

	form := url.Values{
		"grant_type":   {"authorization_code"},
		"client_id":    {p.clientID},
		"code":         {code},
		"redirect_uri": {redirectURI},
	}
	if err := p.requestToken(ctx, form); err != nil {
		p.bridge.Clear()
		return err
	}
	return nil
}

// PasswordSignIn is the direct-grant fallback for headless terminals.
func (p *Provider) PasswordSignIn(ctx context.Context, email string, password []byte) error {
	p.bridge.SetAuthenticating()

	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {p.clientID},
		"username":   {email},
		"password":   {string(password)},
		"scope":      {"openid email profile"},
	}
	if err := p.requestToken(ctx, form); err != nil {
		p.bridge.Clear()
		return err
	}
	return nil
}

// SignOut stops the refresh loop, revokes the refresh token at the provider
// (best-effort) and clears the session bridge.
func (p *Provider) SignOut(ctx context.Context, opts SignOutOptions) error {
	p.mu.Lock()
	if p.refreshCancel != nil {
		p.refreshCancel()
		p.refreshCancel = nil
	}
	refresh := p.refreshToken
	p.refreshToken = ""
	p.mu.Unlock()

	p.bridge.Clear()

	if refresh == "" {
		return nil
	}

	form := url.Values{
		"client_id":     {p.clientID},
		"refresh_token": {refresh},
	}
	if opts.CallbackURL != "" {
		form.Set("post_logout_redirect_uri", opts.CallbackURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.logoutEndpoint(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Warn(ctx, "provider logout failed", "err", err)
		return nil
	}
	defer resp.Body.Close()
	return nil
}

// requestToken posts a token-endpoint form, publishes the access token to
// the bridge and (re)starts the refresh loop.
func (p *Provider) requestToken(ctx context.Context, form url.Values) error {
	tok, err := p.postTokenForm(ctx, form)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.refreshToken = tok.RefreshToken
	if p.refreshCancel != nil {
		p.refreshCancel()
	}
	refreshCtx, cancel := context.WithCancel(context.Background())
	p.refreshCancel = cancel
	p.mu.Unlock()

	p.bridge.SetToken(tok.AccessToken)

	if tok.RefreshToken != "" {
		go p.refreshLoop(refreshCtx, tok.AccessToken, tok.ExpiresIn)
	}
	return nil
}

func (p *Provider) postTokenForm(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenEndpoint(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, common.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint: unexpected status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("token endpoint: empty access token")
	}
	return &tok, nil
}

// refreshLoop renews the access token shortly before it expires. A failed
// renewal clears the session; the next command then walks the user back to
// sign-in.
func (p *Provider) refreshLoop(ctx context.Context, accessToken string, expiresIn int) {
	wait := p.refreshDelay(accessToken, expiresIn)

	for {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		p.mu.Lock()
		refresh := p.refreshToken
		p.mu.Unlock()
		if refresh == "" {
			return
		}

		form := url.Values{
			"grant_type":    {"refresh_token"},
			"client_id":     {p.clientID},
			"refresh_token": {refresh},
		}
		tok, err := p.postTokenForm(ctx, form)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.Warn(ctx, "token refresh failed, clearing session", "err", err)
			p.mu.Lock()
			p.refreshToken = ""
			p.mu.Unlock()
			p.bridge.Clear()
			return
		}

		p.mu.Lock()
		p.refreshToken = tok.RefreshToken
		p.mu.Unlock()
		p.bridge.SetToken(tok.AccessToken)

		wait = p.refreshDelay(tok.AccessToken, tok.ExpiresIn)
	}
}

// refreshDelay derives the time to sleep before renewing: the token's own
// exp claim when readable, the advertised expires_in otherwise.
func (p *Provider) refreshDelay(accessToken string, expiresIn int) time.Duration {
	if _, exp, err := session.TokenClaims(accessToken); err == nil && !exp.IsZero() {
		if d := time.Until(exp) - refreshSkew; d > 0 {
			return d
		}
		return time.Second
	}
	if expiresIn > 0 {
		if d := time.Duration(expiresIn)*time.Second - refreshSkew; d > 0 {
			return d
		}
	}
	return time.Second
}
