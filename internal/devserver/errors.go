package devserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeStoreError answers with the status and message the original backend uses for err.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUserExists):
		writeError(w, "User already exists", http.StatusBadRequest)
	case errors.Is(err, errBadCredentials):
		writeError(w, "Invalid credentials", http.StatusBadRequest)
	case errors.Is(err, errSelfFollow):
		writeError(w, "You cannot follow yourself", http.StatusBadRequest)
	case errors.Is(err, errUserNotFound):
		writeError(w, "User not found", http.StatusNotFound)
	case errors.Is(err, errPostNotFound):
		writeError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, errNotAuthor):
		writeError(w, "Not authorized", http.StatusForbidden)
	default:
		log.Printf("devserver: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
	}
}
