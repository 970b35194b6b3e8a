package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/observability"
	"github.com/kbukum/ssehub/server/endpoint"
	"github.com/kbukum/ssehub/server/middleware"
)

// Server is the HTTP server: a Gin engine for the JSON API plus a root
// ServeMux for raw http.Handler mounts such as the event stream.
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	mux         *http.ServeMux
	middlewares []middleware.Middleware
	config      Config
	log         *logger.Logger
	metrics     *observability.Metrics
	listener    net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a new Server. No middleware is applied until ApplyMiddleware.
func New(cfg Config, log *logger.Logger, opts ...Option) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	s := &Server{
		engine: engine,
		mux:    mux,
		config: cfg,
		log:    log.WithComponent("server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// Engine returns the Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handle mounts an http.Handler on the root ServeMux, bypassing Gin.
// Streaming handlers go here so they get the raw ResponseWriter.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", logger.Fields("pattern", pattern))
}

// Use adds net/http middleware around every route, Gin and raw mounts
// alike. The first added runs first.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.middlewares = append(s.middlewares, mws...)
}

// Handler returns the root handler: middleware around the mux, served over
// HTTP/1.1 and cleartext HTTP/2.
func (s *Server) Handler() http.Handler {
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}
	return h2c.NewHandler(middleware.Chain(s.middlewares...)(s.mux), h2s)
}

// Start binds the port and begins serving, over TLS when a certificate is
// configured. It returns once the listener is bound; serving continues in a
// goroutine.
func (s *Server) Start(ctx context.Context) error {
	tlsConfig, err := s.config.TLS.Build()
	if err != nil {
		return err
	}
	s.httpServer.TLSConfig = tlsConfig
	s.log.Info("Starting HTTP server", logger.Fields("addr", s.httpServer.Addr, "tls", tlsConfig != nil))

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener
	s.httpServer.Handler = s.Handler()

	go func() {
		var err error
		if tlsConfig != nil {
			// Certificates are already loaded into TLSConfig.
			err = s.httpServer.ServeTLS(listener, "", "")
		} else {
			err = s.httpServer.Serve(listener)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", logger.Fields(logger.FieldError, err.Error()))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// ApplyMiddleware installs the standard stack around every route: panic
// recovery, request ID, CORS, body-size limit and request logging.
func (s *Server) ApplyMiddleware() {
	s.Use(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.CORS(&s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
		middleware.RequestLogger(s.log, s.metrics),
	)
}

// RegisterDefaultEndpoints registers /health, /ready, /alive and /info.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/ready", endpoint.Readiness(serviceName, checker))
	s.engine.GET("/alive", endpoint.Liveness(serviceName))
	s.engine.GET("/info", endpoint.Info(serviceName))
}

// ApplyDefaults applies the standard middleware stack and registers default endpoints.
func (s *Server) ApplyDefaults(serviceName string, checker endpoint.HealthChecker) {
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints(serviceName, checker)
}
