// Package devserver is an in-memory reference backend for the community REST API,
// used for local development and end-to-end tests of the client.
package devserver

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"communityClient/internal/config"
)

type Server struct {
	store    *Store
	tokens   *tokenIssuer
	cfg      config.DevServer
	Validate *validator.Validate
}

func NewServer(cfg config.DevServer) *Server {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Server{
		store:    NewStore(),
		tokens:   &tokenIssuer{secret: []byte(cfg.JWTSecretKey), ttl: ttl, now: time.Now},
		cfg:      cfg,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Store exposes the backing data, tests use it to arrange fixtures.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", s.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", s.requireAuth(s.GetCurrentUser)).Methods(http.MethodGet)
	api.Handle("/auth/profile", s.requireAuth(s.UpdateProfile)).Methods(http.MethodPut)

	api.HandleFunc("/posts", s.GetPosts).Methods(http.MethodGet)
	api.Handle("/posts", s.requireAuth(s.CreatePost)).Methods(http.MethodPost)
	api.Handle("/posts/{id}/like", s.requireAuth(s.ToggleLike)).Methods(http.MethodPut)
	api.Handle("/posts/{id}/comment", s.requireAuth(s.AddComment)).Methods(http.MethodPost)
	api.Handle("/posts/{id}", s.requireAuth(s.DeletePost)).Methods(http.MethodDelete)

	api.HandleFunc("/users/{id}", s.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/posts", s.GetUserPosts).Methods(http.MethodGet)
	api.Handle("/users/{id}/follow", s.requireAuth(s.ToggleFollow)).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Route not found", http.StatusNotFound)
	})

	origins := s.cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	})

	return LoggingMiddleware(corsHandler(r))
}

func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
