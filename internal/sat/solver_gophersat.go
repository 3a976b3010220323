package sat

import (
	"sync"
	"time"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersatSolver returns the in-process backend. Minimization runs as a
// portfolio: each worker explores the same model under a rotated constraint
// order, anytime models are collected as they improve, and the whole
// portfolio is stopped on the deadline or on the first proven optimum.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(instance Instance, options Options) (Result, error) {
	if len(instance.Minimize) == 0 {
		return solveDecision(instance), nil
	}

	workers := options.Workers
	if workers < 1 {
		workers = 1
	}

	stop := make(chan struct{})
	var once sync.Once
	halt := func() { once.Do(func() { close(stop) }) }

	if options.Timeout > 0 {
		timer := time.AfterFunc(options.Timeout, halt)
		defer timer.Stop()
	}

	type outcome struct {
		final gophersat.Result
		best  gophersat.Result
		found bool
	}
	outcomes := make(chan outcome, workers)

	for worker := range workers {
		go func(worker int) {
			problem := gophersat.ParseCardConstrs(cardConstrs(instance, worker*len(instance.Clauses)/workers))
			weights := make([]int, len(instance.Minimize))
			for i := range weights {
				weights[i] = 1
			}
			problem.SetCostFunc(costLits(instance), weights)

			results := make(chan gophersat.Result)
			collected := make(chan struct{})

			var best gophersat.Result
			var found bool
			go func() {
				for result := range results {
					if result.Status == gophersat.Sat && (!found || result.Weight < best.Weight) {
						best, found = result, true
					}
				}
				close(collected)
			}()

			final := gophersat.New(problem).Optimal(results, stop)
			<-collected
			outcomes <- outcome{final: final, best: best, found: found}
		}(worker)
	}

	var best Result
	unsatisfiable := 0
	for range workers {
		outcome := <-outcomes
		switch outcome.final.Status {
		case gophersat.Sat:
			// Optimality proven; anything still searching is redundant
			halt()
			if best.Status != Optimal || outcome.final.Weight < best.Cost {
				best = Result{
					Status: Optimal,
					Model:  decodeModel(outcome.final.Model, instance.Variables),
					Cost:   outcome.final.Weight,
				}
			}
		case gophersat.Unsat:
			unsatisfiable++
		default:
			if best.Status != Optimal && outcome.found && (best.Model == nil || outcome.best.Weight < best.Cost) {
				best = Result{
					Status: Feasible,
					Model:  decodeModel(outcome.best.Model, instance.Variables),
					Cost:   outcome.best.Weight,
				}
			}
		}
	}
	halt()

	if best.Model != nil {
		return best, nil
	}
	if unsatisfiable > 0 {
		return Result{Status: Infeasible}, nil
	}
	return Result{Status: Unknown}, nil
}

func solveDecision(instance Instance) Result {
	engine := gophersat.New(gophersat.ParseCardConstrs(cardConstrs(instance, 0)))
	switch engine.Solve() {
	case gophersat.Sat:
		model := engine.Model()
		values := make([]bool, instance.Variables)
		copy(values, model)
		return Result{Status: Optimal, Model: values}
	case gophersat.Unsat:
		return Result{Status: Infeasible}
	default:
		return Result{Status: Unknown}
	}
}

// cardConstrs lowers the instance for gophersat, rotating the clause block by
// offset so portfolio workers branch through the search space differently.
// Literal slices are copied: the parser owns what it receives.
func cardConstrs(instance Instance, offset int) []gophersat.CardConstr {
	constrs := make([]gophersat.CardConstr, 0, len(instance.Clauses)+len(instance.Cards))

	if total := len(instance.Clauses); total > 0 {
		for i := range total {
			clause := instance.Clauses[(i+offset)%total]
			constrs = append(constrs, gophersat.CardConstr{Lits: append([]int(nil), clause...), AtLeast: 1})
		}
	}

	for _, card := range instance.Cards {
		negated := lo.Map(card.Lits, func(lit int, _ int) int { return -lit })
		constrs = append(constrs, gophersat.CardConstr{Lits: negated, AtLeast: len(card.Lits) - card.AtMost})
	}

	return constrs
}

func costLits(instance Instance) []gophersat.Lit {
	return lo.Map(instance.Minimize, func(lit int, _ int) gophersat.Lit {
		return gophersat.IntToLit(int32(lit))
	})
}

// decodeModel flattens gophersat's dense model slice into a slice sized to
// the declared variable count; auxiliaries past that count are dropped.
func decodeModel(model []bool, variables int) []bool {
	values := make([]bool, variables)
	copy(values, model)
	return values
}
