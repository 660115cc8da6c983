package idp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type callbackResult struct {
	code string
	err  error
}

// awaitCallback serves the local sign-in callback while the operator
// completes the browser flow, and returns the authorization code together
// with the redirect URI that must be repeated on the token exchange.
func (p *Provider) awaitCallback(ctx context.Context, opts SignInOptions) (code, redirectURI string, err error) {
	ln, err := net.Listen("tcp", p.callbackAddr)
	if err != nil {
		return "", "", fmt.Errorf("callback listener: %w", err)
	}

	state := uuid.NewString()
	redirectURI = "http://" + ln.Addr().String() + "/callback"

	results := make(chan callbackResult, 1)

	r := chi.NewRouter()
	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("callback state mismatch")}
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "sign-in failed: "+e, http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("provider returned error: %s", e)}
			return
		}
		c := q.Get("code")
		if c == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("callback without code")}
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		results <- callbackResult{code: c}
	})

	srv := &http.Server{Handler: r}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	p.notify(p.authorizeURL(redirectURI, state, opts))

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case res := <-results:
		if res.err != nil {
			return "", "", res.err
		}
		return res.code, redirectURI, nil
	}
}

func (p *Provider) authorizeURL(redirectURI, state string, opts SignInOptions) string {
	q := url.Values{
		"response_type": {"code"},
		"client_id":     {p.clientID},
		"redirect_uri":  {redirectURI},
		"scope":         {"openid email profile"},
		"state":         {state},
	}
	if opts.LoginHint != "" {
		q.Set("login_hint", opts.LoginHint)
	}
	if opts.ActionHint != "" {
		q.Set("kc_action", opts.ActionHint)
	}
	return p.authorizeEndpoint() + "?" + q.Encode()
}
