// Package server exposes the projection engine over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/config"
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/rpgo/household-planner/internal/store"
)

// ErrNoLibrary is returned when a request names a saved household but no library is configured.
var ErrNoLibrary = errors.New("scenario library is not configured")

// Library is the subset of the scenario library the API reads from.
type Library interface {
	Load(name string) (*domain.Household, error)
	LoadAll() (map[string]*domain.Household, error)
	List() ([]store.Entry, error)
}

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Engine          *calculation.ProjectionEngine
	Parser          *config.InputParser
	Library         Library
	MonteCarlo      calculation.MonteCarloConfig
	DefaultScenario string
	Logger          calculation.Logger
	// RequestTimeout bounds each projection request.
	RequestTimeout time.Duration
}

// Server handles projection, Monte Carlo and comparison requests.
type Server struct {
	engine          *calculation.ProjectionEngine
	parser          *config.InputParser
	library         Library
	mc              calculation.MonteCarloConfig
	defaultScenario string
	logger          calculation.Logger
	timeout         time.Duration
	base            context.Context
}

// New creates a server from options.
func New(opts Options) *Server {
	s := &Server{
		engine:          opts.Engine,
		parser:          opts.Parser,
		library:         opts.Library,
		mc:              opts.MonteCarlo,
		defaultScenario: opts.DefaultScenario,
		logger:          opts.Logger,
		timeout:         opts.RequestTimeout,
		base:            context.Background(),
	}
	if s.engine == nil {
		s.engine = calculation.NewProjectionEngine()
	}
	if s.parser == nil {
		s.parser = config.NewInputParser()
	}
	if s.defaultScenario == "" {
		s.defaultScenario = domain.ScenarioModerate
	}
	if s.logger == nil {
		s.logger = calculation.NopLogger{}
	}
	if s.timeout <= 0 {
		s.timeout = 2 * time.Minute
	}
	return s
}

// Handler returns the routed request handler with access logging.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		s.route(ctx)
		s.logger.Infof("%s %s -> %d (%s)", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start))
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	method := string(ctx.Method())
	switch string(ctx.Path()) {
	case "/healthz":
		if method != fasthttp.MethodGet {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/projection":
		s.post(ctx, s.handleProjection)
	case "/v1/montecarlo":
		s.post(ctx, s.handleMonteCarlo)
	case "/v1/compare":
		s.post(ctx, s.handleCompare)
	case "/v1/households":
		if method != fasthttp.MethodGet {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.handleListHouseholds(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+string(ctx.Path()))
	}
}

func (s *Server) post(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h(ctx)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.base = ctx
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "household-planner",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.timeout + 30*time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.ShutdownWithContext(shutdownCtx)
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Infof("household planner API listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}
