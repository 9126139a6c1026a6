package api

import (
	"fmt"
	"net/http"

	"github.com/carelfelix2/scrapper/internal/session"
	"golang.org/x/time/rate"
)

// authTransport is an http.RoundTripper that shapes every outbound request:
// RateLimiter → Bearer token → Send. The token is read from the session store
// at send time, so a login or logout between requests takes effect
// immediately. No retry and no timeout live at this layer; failures propagate
// unchanged to the caller.
type authTransport struct {
	base        http.RoundTripper
	session     *session.Store
	rateLimiter *rate.Limiter
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.rateLimiter != nil {
		if err := t.rateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if tok := t.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("Accept-Encoding", "gzip, br")

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
