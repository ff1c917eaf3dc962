package devserver

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (s *Server) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.UserPosts(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeSuccess(w, userPostsResponse{Posts: posts}, http.StatusOK)
}

func (s *Server) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	following, err := s.store.ToggleFollow(userIDFrom(r), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	message := "User unfollowed successfully"
	if following {
		message = "User followed successfully"
	}

	writeSuccess(w, followResponse{Following: following, Message: message}, http.StatusOK)
}
