// Package status publishes the recorder's state as read-only JSON over HTTP.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/errgroup"
)

type Option func(*Server) error

func Address(address string) Option {
	return func(s *Server) error {
		s.srv.Addr = address
		return nil
	}
}

func Logger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("status: nil logger")
		}
		s.logger = logger
		return nil
	}
}

// RequestLogger enables per-request debug logging.
func RequestLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.requestLogger = logger
		return nil
	}
}

type Server struct {
	logger        *slog.Logger
	requestLogger *slog.Logger
	api           *API
	mux           *httprouter.Router
	srv           *http.Server
	ready         chan net.Addr
}

func NewServer(provider Provider, opts ...Option) (*Server, error) {
	s := &Server{
		logger: slog.Default(),
		mux:    httprouter.New(),
		srv: &http.Server{
			Addr:              "127.0.0.1:8089",
			ReadHeaderTimeout: 5 * time.Second,
		},
		ready: make(chan net.Addr, 1),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.api = NewAPI(provider, s.logger)
	s.api.RegisterRoutes(s.mux)

	var h http.Handler = s.mux
	if s.requestLogger != nil {
		h = s.logRequest(h)
	}
	s.srv.Handler = h
	return s, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Ready yields the bound address once the listener is open.
func (s *Server) Ready() <-chan net.Addr { return s.ready }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.ready <- ln.Addr()
	s.logger.Info("serving recorder status", "address", ln.Addr().String())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requestLogger.Debug("status request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
