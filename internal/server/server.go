// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"studio-growth/internal/common/config"
	"studio-growth/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(r gin.IRoutes)
}

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options are the dependencies the router is built from.
type Options struct {
	Handlers []Registrar
	// Redis is nil when the cooldown store runs in process.
	Redis Pinger
}

// Server runs the API listener and, when metrics.port is set, a separate
// metrics listener.
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	api     *http.Server
	metrics *http.Server
	logger  logger.Logger
}

func New(cfg *config.Config, opts Options, log logger.Logger) (*Server, error) {
	router, err := NewRouter(cfg, opts, log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		router: router,
		api: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		},
		logger: log,
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Port != 0 {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		s.metrics = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return s, nil
}

// NewRouter builds the gin engine with middleware, probes and handler routes.
func NewRouter(cfg *config.Config, opts Options, log logger.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	router.Use(RequestID(), Recovery(log), RequestLogger(log), Metrics())

	health := &healthHandler{redis: opts.Redis, logger: log}
	health.Register(router)

	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	for _, h := range opts.Handlers {
		h.Register(router)
	}
	return router, nil
}

// Handler exposes the API router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured addresses and blocks until ctx is cancelled
// or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	apiLn, err := net.Listen("tcp", s.api.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.api.Addr, err)
	}

	var metricsLn net.Listener
	if s.metrics != nil {
		metricsLn, err = net.Listen("tcp", s.metrics.Addr)
		if err != nil {
			apiLn.Close()
			return fmt.Errorf("listen %s: %w", s.metrics.Addr, err)
		}
	}

	return s.serve(ctx, apiLn, metricsLn)
}

func (s *Server) serve(ctx context.Context, apiLn, metricsLn net.Listener) error {
	type listener struct {
		name string
		srv  *http.Server
		ln   net.Listener
	}
	listeners := []listener{{"api", s.api, apiLn}}
	if s.metrics != nil && metricsLn != nil {
		listeners = append(listeners, listener{"metrics", s.metrics, metricsLn})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		l := l
		g.Go(func() error {
			s.logger.Info("http server listening", map[string]interface{}{
				"server": l.name,
				"addr":   l.ln.Addr().String(),
			})
			if err := l.srv.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", l.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down http servers", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(s.cfg.Server.ShutdownTimeout))
		defer cancel()

		var errs error
		for _, l := range listeners {
			if err := l.srv.Shutdown(shutdownCtx); err != nil {
				errs = errors.Join(errs, fmt.Errorf("%s shutdown: %w", l.name, err))
			}
		}
		return errs
	})

	return g.Wait()
}
