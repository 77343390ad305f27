// Package sweep trains several independently seeded networks on the same
// dataset and reports how far each of them got.
package sweep

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"

	"xornet/m"
	"xornet/nn"
	"xornet/utils"
)

// Result summarises one training run.
type Result struct {
	Run     int
	Seed    uint64
	First   float64 // error of the first epoch
	Last    float64 // error of the last epoch
	Learned float64 // 100 * First / Last
	Elapsed time.Duration
	Network *nn.Network
}

// Run trains config.Runs networks, seeded config.Seed, config.Seed+1, ...,
// on at most config.Workers goroutines. Every network is owned by a single
// goroutine. A zero seed is replaced by one taken from the clock so that
// every result still names the seed it was built from. Results are ordered
// by run.
func Run(ctx context.Context, config utils.Config, lines m.Lines) ([]Result, error) {
	if err := utils.ValidateConfig(&config); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("no training lines")
	}
	if config.Seed == 0 {
		config.Seed = uint64(time.Now().UnixNano())
	}
	inputs, targets := lines.Split()

	p := pool.NewWithResults[Result]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(config.Workers)
	for run := 0; run < config.Runs; run++ {
		run := run
		p.Go(func(ctx context.Context) (Result, error) {
			nc, err := config.Network(uint64(run))
			if err != nil {
				return Result{}, err
			}
			start := time.Now()
			net := nn.NewNetwork(nc)
			errs, err := net.TrainContext(ctx, inputs, targets, config.Epochs, config.LearningRate, config.Momentum)
			if err != nil {
				return Result{}, errors.Wrapf(err, "run %d (seed %d)", run, nc.Seed)
			}
			return newResult(run, nc.Seed, errs, time.Since(start), net), nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Run < results[j].Run })
	return results, nil
}

func newResult(run int, seed uint64, errs []float64, elapsed time.Duration, net *nn.Network) Result {
	first, last := errs[0], errs[len(errs)-1]
	return Result{
		Run:     run,
		Seed:    seed,
		First:   first,
		Last:    last,
		Learned: 100 * first / last,
		Elapsed: elapsed,
		Network: net,
	}
}

// Best returns the result with the lowest final error.
func Best(results []Result) (Result, bool) {
	if len(results) == 0 {
		return Result{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Last < best.Last {
			best = r
		}
	}
	return best, true
}
