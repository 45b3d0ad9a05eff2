package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxSimulations is the ceiling on simulations per run; larger requests are clamped.
const MaxSimulations = 500

// DefaultSimulations is used when neither the caller nor the config names a count.
const DefaultSimulations = 100

// returnPlaces is the precision kept for sampled annual returns.
const returnPlaces int32 = 6

// ErrSimulationIncomplete marks a batch that did not finish. Its result is not a 0% verdict.
var ErrSimulationIncomplete = errors.New("monte carlo run did not complete")

// SimulationError identifies the simulation that failed inside a batch.
type SimulationError struct {
	Index int
	Err   error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation %d: %v", e.Index, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations   int
	Seed             int64 // 0 draws a seed from seedFunc
	Workers          int   // 0 uses GOMAXPROCS
	KeepTrajectories bool  // fill MonteCarloResult.Simulations with per-year records; off leaves it empty
}

// MonteCarloSimulator repeats a projection with randomly drawn annual returns.
type MonteCarloSimulator struct {
	Engine           *ProjectionEngine
	NumSimulations   int
	Seed             int64
	Workers          int
	KeepTrajectories bool

	project func(ctx context.Context, h *domain.Household, scenario string, returns []decimal.Decimal) (domain.Projection, error)
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(engine *ProjectionEngine, config MonteCarloConfig) *MonteCarloSimulator {
	if engine == nil {
		engine = NewProjectionEngine()
	}
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.NumSimulations <= 0 {
		config.NumSimulations = DefaultSimulations
	}

	return &MonteCarloSimulator{
		Engine:           engine,
		NumSimulations:   config.NumSimulations,
		Seed:             config.Seed,
		Workers:          config.Workers,
		KeepTrajectories: config.KeepTrajectories,
		project:          engine.ProjectWithReturns,
	}
}

// ClampSimulations bounds n to [1, MaxSimulations].
func ClampSimulations(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxSimulations {
		return MaxSimulations
	}
	return n
}

// Run executes n simulations of the named scenario. A non-positive n uses the
// simulator's configured count. The returned result is never nil; when err is
// non-nil it has Completed=false and an empty ensemble.
func (mcs *MonteCarloSimulator) Run(ctx context.Context, h *domain.Household, scenarioName string, n int) (*domain.MonteCarloResult, error) {
	requested := n
	if n <= 0 {
		n = mcs.NumSimulations
	}
	n = ClampSimulations(n)
	horizon := h.HorizonLength()

	incomplete := func(err error) (*domain.MonteCarloResult, error) {
		return &domain.MonteCarloResult{
			Scenario:             scenarioName,
			NumSimulations:       n,
			RequestedSimulations: requested,
			HorizonYears:         horizon,
			SuccessRate:          decimal.Zero,
			Completed:            false,
		}, fmt.Errorf("%w: %w", ErrSimulationIncomplete, err)
	}

	params, err := h.Scenarios.Lookup(scenarioName)
	if err != nil {
		return incomplete(err)
	}
	if requested > MaxSimulations {
		mcs.Engine.Logger.Warnf("requested %d simulations; clamped to %d", requested, MaxSimulations)
	}

	workers := mcs.Workers
	if workers <= 0 {
		workers = 1
	}

	seeds := simulationSeeds(mcs.Seed, n)

	// Run simulations in parallel
	results := make([]domain.SimulationOutcome, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers) // Limit concurrent simulations

dispatch:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case semaphore <- struct{}{}:
		}
		wg.Add(1)
		go func(simIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[simIndex], errs[simIndex] = mcs.runSingleSimulation(ctx, h, scenarioName, params.InvestmentReturn, horizon, simIndex, seeds[simIndex])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return incomplete(err)
	}
	for _, err := range errs {
		if err != nil {
			mcs.Engine.Logger.Errorf("monte carlo aborted: %v", err)
			return incomplete(err)
		}
	}

	result := mcs.aggregate(results)
	result.Scenario = scenarioName
	result.RequestedSimulations = requested
	result.HorizonYears = horizon
	return result, nil
}

// simulationSeeds draws one seed per simulation, in index order, from a stream seeded by master.
func simulationSeeds(master int64, n int) []int64 {
	rng := rand.New(rand.NewSource(master))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return seeds
}

// runSingleSimulation draws one return path and projects it. Panics become a *SimulationError.
func (mcs *MonteCarloSimulator) runSingleSimulation(ctx context.Context, h *domain.Household, scenarioName string, base decimal.Decimal, horizon, index int, seed int64) (outcome domain.SimulationOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SimulationError{Index: index, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	rng := rand.New(rand.NewSource(seed))
	returns := DrawReturns(rng, base, horizon)

	trajectory, err := mcs.project(ctx, h, scenarioName, returns)
	if err != nil {
		return outcome, &SimulationError{Index: index, Err: err}
	}

	outcome = domain.SimulationOutcome{
		Index:          index,
		Returns:        returns,
		EndingNetWorth: trajectory.Final().NetWorth,
		MinNetWorth:    trajectory.MinNetWorth(),
		Success:        trajectory.NeverDepleted(),
	}
	if year, depleted := trajectory.FirstDepletionYear(); depleted {
		outcome.DepletionYear = year
	}
	if mcs.KeepTrajectories {
		outcome.Trajectory = trajectory
	} else {
		outcome.Returns = nil
	}
	return outcome, nil
}

// DrawReturns samples years annual returns from N(base, |base|/2).
func DrawReturns(rng *rand.Rand, base decimal.Decimal, years int) []decimal.Decimal {
	mean := base.InexactFloat64()
	stdDev := math.Abs(mean) / 2
	returns := make([]decimal.Decimal, years)
	for i := range returns {
		z := boxMullerTransform(rng.Float64(), rng.Float64())
		returns[i] = decimal.NewFromFloat(mean + z*stdDev).Round(returnPlaces)
	}
	return returns
}

// boxMullerTransform converts two uniform variables to a standard normal draw.
func boxMullerTransform(u1, u2 float64) float64 {
	if u1 <= 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// aggregate computes the success rate and ending net worth distribution.
func (mcs *MonteCarloSimulator) aggregate(simulations []domain.SimulationOutcome) *domain.MonteCarloResult {
	n := len(simulations)
	successes := 0
	depletion := map[int]int{}
	endings := make([]decimal.Decimal, n)
	for i, sim := range simulations {
		if sim.Success {
			successes++
		} else if sim.DepletionYear != 0 {
			depletion[sim.DepletionYear]++
		}
		endings[i] = sim.EndingNetWorth
	}
	sort.Slice(endings, func(i, j int) bool { return endings[i].LessThan(endings[j]) })

	result := &domain.MonteCarloResult{
		NumSimulations:       n,
		Successes:            successes,
		SuccessRate:          SuccessRate(successes, n),
		MedianEndingNetWorth: endings[n/2],
		Percentiles: domain.PercentileRanges{
			P10: endings[n/10],
			P25: endings[n/4],
			P50: endings[n/2],
			P75: endings[3*n/4],
			P90: endings[9*n/10],
		},
		DepletionByYear: depletion,
		Completed:       true,
	}
	if mcs.KeepTrajectories {
		result.Simulations = simulations
	}
	return result
}

// SuccessRate returns 100 * successes / n as a percentage.
func SuccessRate(successes, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(successes)).Mul(hundred).Div(decimal.NewFromInt(int64(n)))
}
