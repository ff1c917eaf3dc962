package devserver

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.Validate.Struct(req); err != nil {
		writeError(w, "Please provide a name, a valid email and a password of at least 6 characters", http.StatusBadRequest)
		return
	}

	user, err := s.store.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.writeAuth(w, user, http.StatusCreated)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := s.Validate.Struct(req); err != nil {
		writeError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	user, err := s.store.VerifyPassword(req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.writeAuth(w, user, http.StatusOK)
}

func (s *Server) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.Me(userIDFrom(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Bio = strings.TrimSpace(req.Bio)

	if err := s.Validate.Struct(req); err != nil {
		writeError(w, "Name must be 2-50 characters and bio at most 500", http.StatusBadRequest)
		return
	}

	user, err := s.store.UpdateProfile(userIDFrom(r), req.Name, req.Bio)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (s *Server) writeAuth(w http.ResponseWriter, user userJSON, status int) {
	token, err := s.tokens.generate(user)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, AuthResponse{Token: token, User: user}, status)
}
