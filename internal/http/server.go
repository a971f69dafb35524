package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Andreprogdev/minhasfinancas-api/internal/ledger"
	"github.com/Andreprogdev/minhasfinancas-api/internal/log"
)

// Server wires the ledger services into the JSON API.
type Server struct {
	entries *ledger.EntryService
	users   *ledger.UserService
	tokens  *TokenManager
	logger  *log.Logger
}

func NewServer(entries *ledger.EntryService, users *ledger.UserService, tokens *TokenManager, logger *log.Logger) *Server {
	return &Server{
		entries: entries,
		users:   users,
		tokens:  tokens,
		logger:  logger.WithComponent(log.ComponentHTTP),
	}
}

// Router builds the chi router with the middleware stack and all routes.
// Recoverer sits above the handlers so a lifecycle precondition panic becomes
// a 500 instead of killing the process.
func (s *Server) Router(corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.trace)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleRegister)
			r.Post("/auth", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/{id}", s.handleGetUser)
				r.Get("/{id}/balance", s.handleBalance)
			})
		})

		r.Route("/entries", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateEntry)
			r.Get("/", s.handleListEntries)
			r.Get("/{id}", s.handleGetEntry)
			r.Put("/{id}", s.handleUpdateEntry)
			r.Delete("/{id}", s.handleDeleteEntry)
			r.Put("/{id}/status", s.handleChangeStatus)
		})
	})

	return r
}

// HTTPServer wraps the router in a http.Server with sane timeouts.
func (s *Server) HTTPServer(addr string, corsOrigins []string) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        s.Router(corsOrigins),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
