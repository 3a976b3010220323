package model

import (
	"fmt"
	"time"

	"github.com/limaJavier/seatplan/internal/sat"
)

// satSeater encodes the seating problem as a boolean model and hands it to a
// sat.Solver. One variable x[s,k,p] states that student s sits at position p
// of room k; x variables exist only for rooms the student's exam allows, so
// restrictions never become explicit constraints. One variable y[k] per room
// feeds the rooms-used objective.
type satSeater struct {
	solver sat.Solver
	config Config
}

func (seater *satSeater) Build(input ModelInput) ([]Assignment, Diagnostics, error) {
	//** Normalize and index the input
	problem, err := newSeatingProblem(input)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	diagnostics := Diagnostics{
		Students:         len(problem.students),
		Rooms:            len(problem.rooms),
		TotalCapacity:    problem.totalCapacity(),
		SymmetryBreaking: seater.config.BreakSymmetry,
		Status:           sat.Unknown.String(),
	}

	if len(problem.students) == 0 {
		diagnostics.Status = sat.Optimal.String()
		return []Assignment{}, diagnostics, nil
	}

	//** Reject infeasible inputs before any solver work
	if err := problem.checkFeasibility(); err != nil {
		return nil, diagnostics, err
	}

	//** Build the boolean model
	instance := sat.Instance{Variables: problem.variables}

	assignmentClauses, assignmentCards, created := seater.assignmentConstraints(problem)
	instance.Clauses = append(instance.Clauses, assignmentClauses...)
	instance.Cards = append(instance.Cards, assignmentCards...)

	capacityClauses, capacityCards := seater.capacityConstraints(problem)
	instance.Clauses = append(instance.Clauses, capacityClauses...)
	instance.Cards = append(instance.Cards, capacityCards...)

	separationClauses, capHit := seater.separationConstraints(problem)
	instance.Clauses = append(instance.Clauses, separationClauses...)

	if seater.config.BreakSymmetry {
		instance.Clauses = append(instance.Clauses, seater.symmetryConstraints(problem)...)
	}

	for k := range problem.rooms {
		instance.Minimize = append(instance.Minimize, problem.roomVariable(k))
	}

	diagnostics.Variables = created + len(problem.rooms)
	diagnostics.Constraints = len(instance.Clauses) + len(instance.Cards)
	diagnostics.SeparationConstraints = len(separationClauses)
	diagnostics.SeparationCapHit = capHit

	//** Run the search
	start := time.Now()
	result, err := seater.solver.Solve(instance, sat.Options{
		Timeout: input.Timeout(),
		Workers: seater.config.Workers,
	})
	diagnostics.SolveTimeMs = time.Since(start).Milliseconds()
	if err != nil {
		return nil, diagnostics, err
	}
	diagnostics.Status = result.Status.String()

	//** Extract the seating
	switch result.Status {
	case sat.Optimal, sat.Feasible:
		assignments, err := problem.extract(result.Model)
		if err != nil {
			return nil, diagnostics, err
		}
		return assignments, diagnostics, nil
	case sat.Infeasible:
		return nil, diagnostics, fmt.Errorf("%v students over %v rooms: %w",
			len(problem.students), len(problem.rooms), ErrSolverInfeasible)
	default:
		return nil, diagnostics, fmt.Errorf("no seating within %v: %w", input.Timeout(), ErrSolverTimeout)
	}
}

// Verify checks the full post-solve contract, the separation invariant
// included. A seating produced under a hit separation cap may legitimately
// fail it.
func (seater *satSeater) Verify(input ModelInput, assignments []Assignment) bool {
	return verify(input, assignments)
}

// assignmentConstraints makes each student sit exactly once: one at-least
// clause plus one at-most-one cardinality over the student's candidate
// variables. Also reports how many x variables the model references.
func (seater *satSeater) assignmentConstraints(problem *seatingProblem) (clauses [][]int, cards []sat.Card, created int) {
	for s := range problem.students {
		candidates := make([]int, 0)
		for k := range problem.rooms {
			if !problem.allowed[problem.examOf[s]][k] {
				continue
			}
			for p := range problem.positions[k] {
				candidates = append(candidates, problem.indexer.Index(s, k, p))
			}
		}
		created += len(candidates)
		clauses = append(clauses, candidates)
		if len(candidates) > 1 {
			cards = append(cards, sat.Card{Lits: candidates, AtMost: 1})
		}
	}
	return clauses, cards, created
}

// capacityConstraints keep every seat at single occupancy and couple each
// occupied seat to its room's usage indicator. Rooms no exam may use get
// their indicator pinned off so the objective never has to reason about them.
func (seater *satSeater) capacityConstraints(problem *seatingProblem) (clauses [][]int, cards []sat.Card) {
	for k := range problem.rooms {
		occupants := make([]int, 0, len(problem.students))
		for s := range problem.students {
			if problem.allowed[problem.examOf[s]][k] {
				occupants = append(occupants, s)
			}
		}

		if len(occupants) == 0 {
			clauses = append(clauses, []int{-problem.roomVariable(k)})
			continue
		}

		for p := range problem.positions[k] {
			seat := make([]int, 0, len(occupants))
			for _, s := range occupants {
				x := problem.indexer.Index(s, k, p)
				seat = append(seat, x)
				clauses = append(clauses, []int{-x, problem.roomVariable(k)})
			}
			if len(seat) > 1 {
				cards = append(cards, sat.Card{Lits: seat, AtMost: 1})
			}
		}
	}
	return clauses, cards
}

// separationConstraints forbid same-exam students on adjacent seats. Emission
// order is fixed (exam, room, adjacent pair, student pair, both seat
// orientations) and halts at the configured cap: past it the seating may
// violate separation for the pairs left unemitted, which Build surfaces
// through the diagnostics flag.
func (seater *satSeater) separationConstraints(problem *seatingProblem) (clauses [][]int, capHit bool) {
	for e := range problem.exams {
		students := problem.examStudents[e]
		if len(students) < 2 {
			continue
		}
		for k := range problem.rooms {
			if !problem.allowed[e][k] {
				continue
			}
			for _, pair := range problem.adjacency[k] {
				p, q := pair[0], pair[1]
				for i := 0; i < len(students)-1; i++ {
					for j := i + 1; j < len(students); j++ {
						if len(clauses)+2 > seater.config.SeparationCap {
							return clauses, true
						}
						clauses = append(clauses,
							[]int{-problem.indexer.Index(students[i], k, p), -problem.indexer.Index(students[j], k, q)},
							[]int{-problem.indexer.Index(students[j], k, p), -problem.indexer.Index(students[i], k, q)})
					}
				}
			}
		}
	}
	return clauses, false
}

// symmetryConstraints order the usage indicators of adjacent identical rooms
// (y[k] >= y[k+1]), pruning permutations of interchangeable rooms. Changes
// which optimal seating comes back, hence opt-in and disclosed.
func (seater *satSeater) symmetryConstraints(problem *seatingProblem) [][]int {
	interchangeable := func(k int) bool {
		a, b := problem.rooms[k], problem.rooms[k+1]
		if a.Rows != b.Rows || a.Cols != b.Cols || a.SkipRows != b.SkipRows || a.SkipCols != b.SkipCols {
			return false
		}
		for e := range problem.exams {
			if problem.allowed[e][k] != problem.allowed[e][k+1] {
				return false
			}
		}
		return true
	}

	clauses := make([][]int, 0)
	for k := 0; k+1 < len(problem.rooms); k++ {
		if interchangeable(k) {
			clauses = append(clauses, []int{problem.roomVariable(k), -problem.roomVariable(k + 1)})
		}
	}
	return clauses
}
