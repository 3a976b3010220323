package sat

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const kissatPath = "kissat"

// kissatSolver shells out to the kissat binary. kissat only decides, so the
// minimization objective is handled by tightening: solve, count the true
// minimization literals, bound the count one lower and solve again until the
// instance turns unsatisfiable or the deadline runs out.
type kissatSolver struct{}

func NewKissatSolver() Solver {
	return &kissatSolver{}
}

func (solver *kissatSolver) Solve(instance Instance, options Options) (Result, error) {
	deadline := time.Now().Add(options.Timeout)
	if options.Timeout <= 0 {
		deadline = time.Now().Add(24 * time.Hour)
	}

	best := Result{Status: Unknown}

	trial := instance
	for {
		model, satisfiable, timedOut, err := runKissat(trial, time.Until(deadline))
		if err != nil {
			return Result{Status: Unknown}, err
		}

		if timedOut {
			if best.Model != nil {
				best.Status = Feasible
			}
			return best, nil
		}

		if !satisfiable {
			if best.Model != nil {
				best.Status = Optimal
			} else {
				best.Status = Infeasible
			}
			return best, nil
		}

		cost := lo.CountBy(instance.Minimize, func(lit int) bool { return model[lit-1] })
		best = Result{Status: Feasible, Model: model, Cost: cost}

		if len(instance.Minimize) == 0 || cost == 0 {
			best.Status = Optimal
			return best, nil
		}

		// Require a strictly better objective on the next round
		trial = instance
		trial.Cards = append(slices.Clone(instance.Cards), Card{
			Lits:   slices.Clone(instance.Minimize),
			AtMost: cost - 1,
		})
	}
}

func runKissat(instance Instance, budget time.Duration) (model []bool, satisfiable bool, timedOut bool, err error) {
	if budget <= 0 {
		return nil, false, true, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	dimacs := instance.ToDIMACS() // Transform the instance into DIMACS-CNF string format

	cmd := exec.CommandContext(ctx, kissatPath, "-q", "--relaxed")
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into kissat's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, false, true, nil
	}
	if cmd.ProcessState == nil {
		return nil, false, false, fmt.Errorf("cannot execute %v: %v", kissatPath, runErr)
	}
	if runErr != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 { // Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
		return nil, false, false, fmt.Errorf("an error occurred during kissat execution: %v : %v", runErr.Error(), stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, false, false, nil
	}

	model = make([]bool, instance.Variables)
	for _, literal := range ParseSolution(stdOut.String()) {
		if literal > 0 && literal <= instance.Variables {
			model[literal-1] = true
		}
	}
	return model, true, false, nil
}

// ParseSolution extracts the literal assignment from a solver's DIMACS
// output. Solvers may spread the assignment over several "v" lines; the
// closing 0 is dropped.
func ParseSolution(solverOutput string) []int {
	solution := make([]int, 0)

	for _, line := range strings.Split(solverOutput, "\n") {
		if len(line) == 0 || line[0] != 'v' {
			continue
		}
		for _, item := range strings.Fields(line[1:]) {
			value, err := strconv.Atoi(item)
			if err != nil {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			if value == 0 {
				return solution
			}
			solution = append(solution, value)
		}
	}

	return solution
}
