// Package batch evaluates many independent chord problems in parallel.
// Every problem is a pure function of its inputs, so the pool needs no
// coordination beyond fan-out/fan-in; output order always matches input
// order, and one bad problem never aborts the rest of the batch.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/solver"
)

// InverseProblem is one point pair for the inverse solver.
type InverseProblem struct {
	P1, P2 geodesy.GeodeticPoint
}

// DirectProblem is one station plus chord observation for the direct solver.
type DirectProblem struct {
	Origin      geodesy.GeodeticPoint
	Observation solver.ChordObservation
}

// InverseOutcome is the per-item result of a batch inverse solve.
// Err is empty on success.
type InverseOutcome struct {
	Result solver.InverseResult
	Err    string
}

// DirectOutcome is the per-item result of a batch direct solve.
type DirectOutcome struct {
	Result solver.DirectResult
	Err    string
}

// Pool is a fixed-size worker pool for batch solving.
type Pool struct {
	workers int
	logger  *slog.Logger
}

// NewPool creates a pool with the given number of workers (minimum 1).
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, logger: logger}
}

// SolveInverse solves all problems against the given ellipsoid. The
// returned slice is index-aligned with the input. Cancelling the context
// stops scheduling; unprocessed items report the context error.
func (p *Pool) SolveInverse(ctx context.Context, problems []InverseProblem, ell *ellipsoid.Ellipsoid) []InverseOutcome {
	out := make([]InverseOutcome, len(problems))
	p.run(ctx, len(problems), func(i int) {
		res, err := solver.InverseFull(problems[i].P1, problems[i].P2, ell)
		if err != nil {
			out[i].Err = err.Error()
			return
		}
		out[i].Result = res
	}, func(i int, ctxErr error) {
		out[i].Err = ctxErr.Error()
	})
	return out
}

// SolveDirect is SolveInverse for direct problems.
func (p *Pool) SolveDirect(ctx context.Context, problems []DirectProblem, ell *ellipsoid.Ellipsoid) []DirectOutcome {
	out := make([]DirectOutcome, len(problems))
	p.run(ctx, len(problems), func(i int) {
		res, err := solver.DirectFull(problems[i].Origin, problems[i].Observation, ell)
		if err != nil {
			out[i].Err = err.Error()
			return
		}
		out[i].Result = res
	}, func(i int, ctxErr error) {
		out[i].Err = ctxErr.Error()
	})
	return out
}

// run fans n indexed jobs across the pool. Each worker writes only to its
// own job's output slot, so no further synchronization is needed. skipped
// is invoked for indexes never scheduled because the context was done.
func (p *Pool) run(ctx context.Context, n int, solve func(i int), skipped func(i int, ctxErr error)) {
	if n == 0 {
		return
	}

	jobs := make(chan int, p.workers*2)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				solve(i)
			}
		}()
	}

	next := 0
feed:
	for ; next < n; next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	if err := ctx.Err(); err != nil {
		for i := next; i < n; i++ {
			skipped(i, err)
		}
		if p.logger != nil {
			p.logger.Warn("batch cancelled before completion", "scheduled", next, "total", n, "error", err)
		}
	}

	wg.Wait()
}
