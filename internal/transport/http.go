package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/plan"
)

// Config configures the HTTP server.
type Config struct {
	App *app.App
	// Auth replaces bearer authentication when set.
	Auth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set. It authenticates on its own.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	app    *app.App
	logger *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	auth := cfg.Auth
	if auth == nil {
		auth = AuthMiddleware(cfg.App.Accounts)
	}

	srv := &Server{app: cfg.App, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth)
		r.Use(GuestMiddleware(cfg.App.Guests))

		r.Post("/signup", srv.handleSignup)

		r.Post("/guest/session", srv.handleGuestCreate)
		r.Get("/guest/session", srv.handleGuestStatus)
		r.Delete("/guest/session", srv.handleGuestDiscard)
		r.Post("/guest/merge", srv.handleGuestMerge)

		r.Get("/profile", srv.handleProfile)
		r.Patch("/profile", srv.handleProfileUpdate)
		r.Get("/profile/plan", srv.handlePlanStatus)
		r.Get("/activity", srv.handleActivity)
		r.Get("/limits", srv.owned(srv.handleLimits))
		r.Get("/dashboard", srv.owned(srv.handleDashboard))
		r.Post("/feedback", srv.handleFeedback)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/board", srv.owned(srv.handleHabitBoard))
			r.Post("/", srv.owned(srv.handleHabitCreate))
			r.Patch("/{id}", srv.owned(srv.handleHabitUpdate))
			r.Delete("/{id}", srv.owned(srv.handleHabitDelete))
			r.Post("/{id}/restore", srv.owned(srv.handleHabitRestore))
			r.Delete("/{id}/destroy", srv.owned(srv.handleHabitDestroy))
			r.Put("/{id}/days/{date}", srv.owned(srv.handleHabitDay))
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", srv.owned(srv.handleNoteList))
			r.Post("/", srv.owned(srv.handleNoteCreate))
			r.Patch("/{id}", srv.owned(srv.handleNoteUpdate))
			r.Delete("/{id}", srv.owned(srv.handleNoteDelete))
			r.Put("/{id}/color", srv.owned(srv.handleNoteColor))
		})

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", srv.owned(srv.handleTodoList))
			r.Post("/", srv.owned(srv.handleTodoCreate))
			r.Patch("/{id}", srv.owned(srv.handleTodoRename))
			r.Delete("/{id}", srv.owned(srv.handleTodoDelete))
			r.Post("/{id}/toggle", srv.owned(srv.handleTodoToggle))
			r.Post("/{id}/move", srv.owned(srv.handleTodoMove))
			r.Put("/{id}/color", srv.owned(srv.handleTodoColor))
		})

		r.Route("/shelves/{shelf}", func(r chi.Router) {
			r.Get("/", srv.owned(srv.handleShelfBoard))
			r.Post("/", srv.owned(srv.handleShelfAdd))
			r.Patch("/{id}", srv.owned(srv.handleShelfEdit))
			r.Delete("/{id}", srv.owned(srv.handleShelfDelete))
			r.Post("/{id}/move", srv.owned(srv.handleShelfMove))
			r.Put("/{id}/color", srv.owned(srv.handleShelfColor))
		})

		r.Route("/journal", func(r chi.Router) {
			r.Get("/", srv.owned(srv.handleJournalMonth))
			r.Get("/report", srv.owned(srv.handleJournalReport))
			r.Get("/{date}", srv.owned(srv.handleJournalGet))
			r.Put("/{date}", srv.owned(srv.handleJournalSave))
			r.Delete("/{date}", srv.owned(srv.handleJournalDelete))
		})

		r.Route("/pomodoro", func(r chi.Router) {
			r.Get("/settings", srv.owned(srv.handlePomodoroSettings))
			r.Put("/settings", srv.owned(srv.handlePomodoroSaveSettings))
			r.Get("/sessions", srv.owned(srv.handlePomodoroHistory))
			r.Post("/sessions", srv.owned(srv.handlePomodoroFinish))
			r.Get("/report", srv.owned(srv.handlePomodoroReport))
		})

		r.Route("/sources", func(r chi.Router) {
			r.Get("/", srv.owned(srv.handleSourceList))
			r.Post("/", srv.owned(srv.handleSourceCreate))
			r.Patch("/{id}", srv.owned(srv.handleSourceUpdate))
			r.Delete("/{id}", srv.owned(srv.handleSourceDelete))
			r.Put("/{id}/color", srv.owned(srv.handleSourceColor))
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ownerHandler handles a request on behalf of an account or a guest.
type ownerHandler func(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error

// owned resolves the caller's scope and services. The account wins when a
// request carries both a token and a guest session.
func (s *Server) owned(h ownerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, _ := AccountFromContext(r.Context())
		sess, _ := GuestFromContext(r.Context())
		scope, svc, err := s.app.Owner(r.Context(), accountID, sess)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		if err := h(w, r, scope, svc); err != nil {
			writeError(w, r, s.logger, err)
		}
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
