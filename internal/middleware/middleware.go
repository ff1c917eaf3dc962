// Package middleware wraps the outgoing HTTP transport of the API client.
package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Middleware func(http.RoundTripper) http.RoundTripper

type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Credential is the bearer token shared between the session store and the transport.
type Credential struct {
	mu    sync.RWMutex
	token string
}

func NewCredential() *Credential {
	return &Credential{}
}

func (c *Credential) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Credential) Clear() {
	c.Set("")
}

func (c *Credential) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// AuthMiddleware adds "Authorization: Bearer <token>" while a credential is present
func AuthMiddleware(cred *Credential) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token := cred.Token()
			if token == "" || r.Header.Get("Authorization") != "" {
				return next.RoundTrip(r)
			}

			// RoundTrippers must not modify the caller's request
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)

			return next.RoundTrip(r)
		})
	}
}

func RequestIDMiddleware(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("X-Request-ID") != "" {
			return next.RoundTrip(r)
		}

		r = r.Clone(r.Context())
		r.Header.Set("X-Request-ID", uuid.New().String())

		return next.RoundTrip(r)
	})
}

func LoggingMiddleware(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(r)
		if err != nil {
			log.Printf("%s %s failed after %s: %v", r.Method, r.URL.Path, time.Since(start), err)
			return nil, err
		}

		log.Printf("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, resp.StatusCode,
			time.Since(start).Round(time.Millisecond), r.Header.Get("X-Request-ID"))

		return resp, nil
	})
}

// Chain wraps base with middlewares, the first one ends up outermost.
func Chain(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		base = middlewares[i](base)
	}
	return base
}
