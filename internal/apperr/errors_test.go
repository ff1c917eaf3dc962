package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := Validation("name", "must be at least 2 characters")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "name: must be at least 2 characters", err.Error())

	var vErr *ValidationError
	assert.True(t, errors.As(fmt.Errorf("update profile: %w", err), &vErr))
	assert.Equal(t, "name", vErr.Field)
}

func TestAPIErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"unauthorized", NewAPIError(http.StatusUnauthorized, "no token", ErrUnauthorized), ErrUnauthorized},
		{"conflict wrapped", fmt.Errorf("register: %w", NewAPIError(http.StatusConflict, "", ErrConflict)), ErrConflict},
		{"validation", Validation("", "content is required"), ErrValidation},
		{"unknown", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Kind(tt.err))
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := NewAPIError(http.StatusNotFound, "Post not found", ErrNotFound)
	assert.Equal(t, "not found (status 404): Post not found", err.Error())

	err = NewAPIError(http.StatusBadGateway, "", ErrServer)
	assert.Equal(t, "server error (status 502)", err.Error())
}
