package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/domain"
)

// HouseholdSource names the household a request operates on: an inline record or a saved name.
type HouseholdSource struct {
	Name      string                  `json:"name,omitempty"`
	Household *domain.HouseholdRecord `json:"household,omitempty"`
	Saved     string                  `json:"saved,omitempty"`
}

// ProjectionRequest asks for a deterministic projection. Returns, when present,
// replaces the scenario's fixed return with one rate per projection year.
type ProjectionRequest struct {
	HouseholdSource
	Scenario string            `json:"scenario,omitempty"`
	Returns  []decimal.Decimal `json:"returns,omitempty"`
}

// MonteCarloRequest asks for a Monte Carlo run alongside the deterministic projection.
type MonteCarloRequest struct {
	HouseholdSource
	Scenario           string `json:"scenario,omitempty"`
	Simulations        int    `json:"simulations,omitempty"`
	Seed               int64  `json:"seed,omitempty"`
	IncludeSimulations bool   `json:"include_simulations,omitempty"`
}

// CompareRequest compares inline households, or every saved household when none are given.
type CompareRequest struct {
	Scenario   string                            `json:"scenario,omitempty"`
	Households map[string]domain.HouseholdRecord `json:"households,omitempty"`
	Names      []string                          `json:"names,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.base, s.timeout)
}

func (s *Server) scenario(name string) string {
	if name == "" {
		return s.defaultScenario
	}
	return name
}

// resolve builds the household named by src.
func (s *Server) resolve(src HouseholdSource) (string, *domain.Household, error) {
	switch {
	case src.Household != nil:
		h, err := s.parser.Build(*src.Household)
		if err != nil {
			return "", nil, err
		}
		name := src.Name
		if name == "" {
			name = "household"
		}
		return name, h, nil
	case src.Saved != "":
		if s.library == nil {
			return "", nil, ErrNoLibrary
		}
		h, err := s.library.Load(src.Saved)
		if err != nil {
			return "", nil, err
		}
		return src.Saved, h, nil
	default:
		return "", nil, fmt.Errorf("%w: request needs a household or a saved name", domain.ErrInvalidInput)
	}
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	var req ProjectionRequest
	if !decode(ctx, &req) {
		return
	}
	name, h, err := s.resolve(req.HouseholdSource)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	rctx, cancel := s.requestContext()
	defer cancel()

	scenario := s.scenario(req.Scenario)
	report, err := s.engine.Report(rctx, name, h, scenario)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	if len(req.Returns) > 0 {
		projection, err := s.engine.ProjectWithReturns(rctx, h, scenario, req.Returns)
		if err != nil {
			writeErr(ctx, err)
			return
		}
		report.Projection = projection
	}
	writeJSON(ctx, fasthttp.StatusOK, report)
}

func (s *Server) handleMonteCarlo(ctx *fasthttp.RequestCtx) {
	var req MonteCarloRequest
	if !decode(ctx, &req) {
		return
	}
	name, h, err := s.resolve(req.HouseholdSource)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	rctx, cancel := s.requestContext()
	defer cancel()

	scenario := s.scenario(req.Scenario)
	report, err := s.engine.Report(rctx, name, h, scenario)
	if err != nil {
		writeErr(ctx, err)
		return
	}

	cfg := s.mc
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	cfg.KeepTrajectories = req.IncludeSimulations
	sim := calculation.NewMonteCarloSimulator(s.engine, cfg)
	result, err := sim.Run(rctx, h, scenario, req.Simulations)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	report.MonteCarlo = result
	writeJSON(ctx, fasthttp.StatusOK, report)
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !decode(ctx, &req) {
		return
	}
	households := make(map[string]*domain.Household, len(req.Households))
	for name, rec := range req.Households {
		h, err := s.parser.Build(rec)
		if err != nil {
			writeErr(ctx, fmt.Errorf("%s: %w", name, err))
			return
		}
		households[name] = h
	}
	if len(households) == 0 {
		if s.library == nil {
			writeErr(ctx, ErrNoLibrary)
			return
		}
		saved, err := s.library.LoadAll()
		if err != nil {
			writeErr(ctx, err)
			return
		}
		households = saved
	}

	rctx, cancel := s.requestContext()
	defer cancel()
	scenario := s.scenario(req.Scenario)
	comparison, err := s.engine.CompareHouseholds(rctx, households, req.Names, scenario)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, domain.ProjectionReport{
		Household:  "comparison",
		Scenario:   scenario,
		Comparison: comparison,
	})
}

func (s *Server) handleListHouseholds(ctx *fasthttp.RequestCtx) {
	if s.library == nil {
		writeErr(ctx, ErrNoLibrary)
		return
	}
	entries, err := s.library.List()
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, entries)
}

func decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// statusFor maps engine and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, ErrNoLibrary):
		return fasthttp.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusGatewayTimeout
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownScenario),
		errors.Is(err, domain.ErrUnknownTemplate),
		errors.Is(err, domain.ErrDuplicatePerson),
		errors.Is(err, domain.ErrDuplicateTemplate),
		errors.Is(err, domain.ErrTemplateInUse),
		errors.Is(err, calculation.ErrInsufficientReturns):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

func writeErr(ctx *fasthttp.RequestCtx, err error) {
	writeError(ctx, statusFor(err), err.Error())
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = fasthttp.StatusInternalServerError
		body = []byte(`{"status":500,"message":"encoding response failed"}`)
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
