package http

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sessioncontext "teamdash/frontend/shared/context"
	"teamdash/infrastructure/audit"
	"teamdash/infrastructure/cache"
	"teamdash/infrastructure/metrics"
	sessioncookie "teamdash/infrastructure/session"
	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Options holds the per-workspace settings.
type Options struct {
	LoadingDelay time.Duration
	WorkspaceTTL time.Duration
	Viewer       sessioncontext.Viewer
}

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	DB         *sqlite.DB
	Workspaces *cache.WorkspaceCache
	Audit      *audit.Service
	Metrics    *metrics.Metrics
	Seed       []team.User
	Options    Options

	csrf csrfSigner
}

// NewServer creates a new http server.
func NewServer(addr string, db *sqlite.DB, workspaces *cache.WorkspaceCache, auditSvc *audit.Service, m *metrics.Metrics, seed []team.User, opts Options) *Server {
	if opts.WorkspaceTTL <= 0 {
		opts.WorkspaceTTL = sessioncookie.DefaultTTL
	}
	s := &Server{
		Addr:       addr,
		router:     chi.NewRouter(),
		DB:         db,
		Workspaces: workspaces,
		Audit:      auditSvc,
		Metrics:    m,
		Seed:       seed,
		Options:    opts,
		csrf:       newCSRFSigner(),
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	if m != nil {
		s.router.Use(m.Middleware)
	}
	s.router.Use(middleware.Compress(5))

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/team", http.StatusSeeOther)
	})

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if m != nil {
		s.router.Handle("/metrics", m.Handler())
	}

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.router.Route("/team", func(r chi.Router) {
		r.Use(s.WorkspaceMiddleware)
		r.Use(s.CSRFMiddleware)
		s.RegisterDashboardRoutes(r)
		s.RegisterExportRoutes(r)
		s.RegisterActivityRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

// WorkspaceMiddleware resolves the caller's workspace from its cookie, creating a
// freshly seeded one when the cookie is missing or has expired.
func (s *Server) WorkspaceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ws *team.Workspace
		if c, err := r.Cookie(sessioncookie.CookieName); err == nil && c.Value != "" {
			ws, _ = s.Workspaces.Find(c.Value)
		}
		if ws == nil {
			ws = team.NewWorkspace(sessioncookie.NewToken(), s.Seed, s.Options.LoadingDelay)
			s.Workspaces.Add(ws)
			slog.Info("workspace created", slog.String("workspace_id", ws.ID), slog.String("request_id", middleware.GetReqID(r.Context())))
		}
		http.SetCookie(w, sessioncookie.WorkspaceCookie(ws.ID, int(s.Options.WorkspaceTTL/time.Second)))

		ctx := sessioncontext.NewContextWithWorkspace(r.Context(), ws)
		ctx = sessioncontext.NewContextWithViewer(ctx, s.Options.Viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SweepIdle drops workspaces that have not been used within the TTL.
func (s *Server) SweepIdle() int {
	n := s.Workspaces.Sweep(s.Options.WorkspaceTTL)
	if n > 0 {
		slog.Info("idle workspaces swept", slog.Int("count", n))
	}
	return n
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}
