package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

func (s *Server) GetPosts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	posts, totalPages := s.store.ListPosts(page, limit)

	writeSuccess(w, postListResponse{Posts: posts, TotalPages: totalPages, CurrentPage: page}, http.StatusOK)
}

func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	content, ok := s.decodeContent(w, r)
	if !ok {
		return
	}

	post, err := s.store.CreatePost(userIDFrom(r), content)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (s *Server) ToggleLike(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.ToggleLike(userIDFrom(r), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	content, ok := s.decodeContent(w, r)
	if !ok {
		return
	}

	post, err := s.store.AddComment(userIDFrom(r), mux.Vars(r)["id"], content)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePost(userIDFrom(r), mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, map[string]string{"message": "Post deleted successfully"}, http.StatusOK)
}

func (s *Server) decodeContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return "", false
	}
	req.Content = strings.TrimSpace(req.Content)

	if err := s.Validate.Struct(req); err != nil {
		writeError(w, "Content is required and must be at most 1000 characters", http.StatusBadRequest)
		return "", false
	}

	return req.Content, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
