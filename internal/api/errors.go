package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"communityClient/internal/apperr"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleAPIError turns a failed response into an *apperr.APIError of the matching kind.
func HandleAPIError(r *http.Response, body []byte) *apperr.APIError {
	msg := strings.TrimSpace(string(body))

	var parsed errorBody
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") && json.Unmarshal(body, &parsed) == nil {
		if parsed.Error != "" {
			msg = parsed.Error
		} else {
			msg = parsed.Message
		}
	}

	return apperr.NewAPIError(r.StatusCode, msg, kindForStatus(r.StatusCode))
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apperr.ErrUnauthorized
	case status == http.StatusNotFound:
		return apperr.ErrNotFound
	case status == http.StatusConflict:
		return apperr.ErrConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperr.ErrValidation
	default:
		return apperr.ErrServer
	}
}

// asCredentialsError reclassifies rejected logins, the backend answers them with 400 or 401.
func asCredentialsError(err error) error {
	var apiErr *apperr.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return apperr.NewAPIError(apiErr.Status, apiErr.Message, apperr.ErrInvalidCredentials)
	}
	return err
}

// asConflictError reclassifies duplicate registrations reported as 400 "already exists".
func asConflictError(err error) error {
	var apiErr *apperr.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Status == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "already exists") {
		return apperr.NewAPIError(apiErr.Status, apiErr.Message, apperr.ErrConflict)
	}
	return err
}
