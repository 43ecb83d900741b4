package http

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport"
	httpmetrics "github.com/kochabx/eckit/transport/http/metrics"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName = "http"
	defaultAddr = ":8080"
)

// Meta is the metadata of the server.
type Meta struct {
	Name string
}

type Server struct {
	meta    Meta
	options Options
	server  *http.Server

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) {
		s.meta = meta
	}
}

func WithMetricsOptions(metrics MetricsOption) Option {
	return func(s *Server) {
		metrics.init()
		s.options.Metrics = metrics
	}
}

func WithSwagOptions(swag SwagOption) Option {
	return func(s *Server) {
		swag.init()
		s.options.Swag = swag
	}
}

func WithHealthOptions(health HealthOption) Option {
	return func(s *Server) {
		health.init()
		s.options.Health = health
	}
}

func WithTimeoutOptions(timeouts TimeoutOption) Option {
	return func(s *Server) {
		s.options.Timeouts = timeouts
	}
}

func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		ready: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.options.Timeouts.init()
	s.server.ReadHeaderTimeout = s.options.Timeouts.ReadHeader
	s.server.ReadTimeout = s.options.Timeouts.Read
	s.server.WriteTimeout = s.options.Timeouts.Write
	s.server.IdleTimeout = s.options.Timeouts.Idle

	additionalHandlers(s)

	return s
}

func (s *Server) Run() error {
	if s.meta.Name == "" {
		s.meta.Name = defaultName
	}

	if ok := transport.ValidateAddress(s.server.Addr); !ok {
		log.Warn().Msgf("invalid address %s, using default address: %s", s.server.Addr, defaultAddr)
		s.server.Addr = defaultAddr
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	log.Info().Msgf("%s server listening on %s", s.meta.Name, ln.Addr())

	return s.server.Serve(ln)
}

// Ready is closed once Run is accepting connections
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, which resolves port 0 after Run is ready
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Handler returns the root handler including the additional routes
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func additionalHandlers(s *Server) {
	if r, ok := s.server.Handler.(*gin.Engine); ok {
		handleMetrics(s, r)
		handleSwag(s, r)
		handleHealth(s, r)
	}
}

func handleMetrics(s *Server, r *gin.Engine) {
	if s.options.Metrics.Enabled {
		if s.options.Metrics.EnabledGoCollector {
			httpmetrics.Prom.WithGoCollectorRuntimeMetrics()
		}
		if s.options.Metrics.EnabledBuildInfoCollector {
			httpmetrics.Prom.WithBuildInfoCollector()
		}

		r.GET(s.options.Metrics.Path, gin.WrapH(promhttp.HandlerFor(httpmetrics.Prom.Registry(), promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})))
	}
}

func handleSwag(s *Server, r *gin.Engine) {
	if s.options.Swag.Enabled {
		r.GET(s.options.Swag.Path, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func handleHealth(s *Server, r *gin.Engine) {
	if s.options.Health.Enabled {
		r.GET(s.options.Health.Path, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}
