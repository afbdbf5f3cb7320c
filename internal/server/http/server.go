package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/chenxiaowo/ktrace/internal/runtime"
	"github.com/chenxiaowo/ktrace/internal/server/http/controllers"
	tracesvc "github.com/chenxiaowo/ktrace/internal/services/tracing"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// Server serves the ktrace HTTP API.
type Server struct {
	rt  *runtime.Runtime
	srv *http.Server
	lis net.Listener
}

// New constructs a Server with a default service and logger.
func New(rt *runtime.Runtime) *Server {
	return NewWithService(rt, tracesvc.New(rt), nil)
}

// NewWithService constructs a Server around shared service instances.
func NewWithService(rt *runtime.Runtime, svc *tracesvc.Service, logger logpkg.Logger) *Server {
	if svc == nil {
		svc = tracesvc.New(rt)
	}
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("http"))
	}
	mux := http.NewServeMux()
	s := &Server{rt: rt, srv: &http.Server{Handler: cors(mux)}}
	registry := controllers.NewControllerRegistry(rt, svc, logger)
	registry.RegisterAllRoutes(mux)
	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Addr returns the bound listener address, or empty before ListenAndServe.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

// Close stops the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
