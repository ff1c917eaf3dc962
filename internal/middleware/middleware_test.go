package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingServer(t *testing.T) (*httptest.Server, *http.Header) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestAuthMiddleware(t *testing.T) {
	srv, got := recordingServer(t)
	cred := NewCredential()
	client := &http.Client{Transport: Chain(nil, AuthMiddleware(cred))}

	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "no credential", token: "", expected: ""},
		{name: "credential present", token: "abc", expected: "Bearer abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred.Set(tt.token)

			req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
			require.NoError(t, err)

			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.expected, got.Get("Authorization"))
			// the caller's request stays untouched
			assert.Empty(t, req.Header.Get("Authorization"))
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	srv, got := recordingServer(t)
	client := &http.Client{Transport: Chain(nil, RequestIDMiddleware, LoggingMiddleware)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Len(t, got.Get("X-Request-ID"), 36)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	_, err := Chain(base, mark("first"), mark("second")).RoundTrip(req)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "base"}, order)
}

func TestCredential(t *testing.T) {
	cred := NewCredential()
	cred.Set("t1")
	assert.Equal(t, "t1", cred.Token())

	cred.Clear()
	assert.Empty(t, cred.Token())
}
