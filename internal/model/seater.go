package model

import "github.com/limaJavier/seatplan/internal/sat"

// Seater produces a seating for a ModelInput and can check one afterwards.
// Build returns diagnostics even on failure so callers can always observe
// what the run did.
type Seater interface {
	Build(input ModelInput) ([]Assignment, Diagnostics, error)
	Verify(input ModelInput, assignments []Assignment) bool
}

type Config struct {
	Workers       int  // Parallel search workers handed to the solver
	SeparationCap int  // Ceiling on emitted separation constraints
	BreakSymmetry bool // Order usage of adjacent identical rooms; disclosed in diagnostics
}

var DefaultConfig = Config{
	Workers:       4,
	SeparationCap: 50000,
}

func NewSatSeater(solver sat.Solver) Seater {
	return NewSatSeaterWithConfig(solver, DefaultConfig)
}

func NewSatSeaterWithConfig(solver sat.Solver, config Config) Seater {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig.Workers
	}
	if config.SeparationCap <= 0 {
		config.SeparationCap = DefaultConfig.SeparationCap
	}
	return &satSeater{solver: solver, config: config}
}

func NewGreedySeater() Seater {
	return &greedySeater{}
}
