package model

import "errors"

var (
	// ErrInsufficientCapacity rejects inputs whose usable seats cannot hold
	// every student; detected before any solver work.
	ErrInsufficientCapacity = errors.New("insufficient seating capacity")

	// ErrRestrictedInsufficientCapacity rejects inputs where a restricted
	// exam's allowed rooms cannot hold its students.
	ErrRestrictedInsufficientCapacity = errors.New("insufficient capacity for restricted exam")

	// ErrSolverTimeout is surfaced when the deadline fires before any model
	// is found; a larger timeout may still succeed.
	ErrSolverTimeout = errors.New("solver timed out without a solution")

	// ErrSolverInfeasible marks inputs proven unseatable.
	ErrSolverInfeasible = errors.New("seating model is infeasible")

	// ErrSolverInvariantViolated reports a solver response that does not seat
	// every student exactly once; it indicates a bug, not a bad input.
	ErrSolverInvariantViolated = errors.New("solver response violates seating invariants")

	// ErrUnassignable is the greedy seater's give-up: first-fit plus matching
	// repair could not seat everyone, though a complete search still might.
	ErrUnassignable = errors.New("not all students can be assigned a seat")
)
