// Package transport is the HTTP surface of the service: the versioned API
// routes, auth enforcement, and the server lifecycle.
package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"tabular/internal/auth"
	"tabular/internal/config"
	"tabular/internal/engine"
	"tabular/internal/logging"
	"tabular/internal/pipeline"
)

const (
	// Version is the application version reported by system endpoints.
	Version = "1.0.0"
	// APIVersion is the active API generation mounted under /api.
	APIVersion = "v1"
)

// Deps carries everything the handlers need, resolved once at startup.
type Deps struct {
	Registry *pipeline.Registry
	Caps     engine.Caps
	Users    *auth.Store
	Tokens   *auth.Manager
}

type Server struct {
	http *http.Server
	lis  net.Listener
}

// StartServer binds the listen socket and prepares the HTTP server; call
// Serve to begin handling.
func StartServer(cfg config.ServerCfg, deps Deps) (*Server, error) {
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, err
	}
	s := &Server{
		http: &http.Server{
			Handler:      Routes(deps),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		lis: lis,
	}
	return s, nil
}

// Addr reports the bound address, useful when the configured port was 0.
func (s *Server) Addr() string { return s.lis.Addr().String() }

func (s *Server) Serve() error {
	err := s.http.Serve(s.lis)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = s.http.Shutdown(ctx)
}

type handler struct {
	registry *pipeline.Registry
	caps     engine.Caps
	users    *auth.Store
	tokens   *auth.Manager
	log      *slog.Logger
}

// Routes assembles the API handler tree. Heartbeat, server-info and the two
// credential endpoints are public; everything else sits behind bearer auth.
func Routes(deps Deps) http.Handler {
	h := &handler{
		registry: deps.Registry,
		caps:     deps.Caps,
		users:    deps.Users,
		tokens:   deps.Tokens,
		log:      logging.Component("http"),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/heartbeat", h.heartbeat)
	mux.HandleFunc("GET /api/v1/server-info", h.serverInfo)
	mux.HandleFunc("POST /api/v1/auth/token", h.token)
	mux.HandleFunc("POST /api/v1/auth/register", h.register)
	mux.Handle("GET /api/v1/auth/users/me", h.requireAuth(http.HandlerFunc(h.usersMe)))
	mux.Handle("POST /api/v1/transform", h.requireAuth(http.HandlerFunc(h.transform)))
	mux.Handle("GET /api/v1/transformations", h.requireAuth(http.HandlerFunc(h.listTransformations)))

	var root http.Handler = mux
	root = withAccessLog(root, h.log)
	root = withRecovery(root, h.log)
	root = withRequestID(root)
	return root
}
