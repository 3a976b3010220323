package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/limaJavier/seatplan/internal/model"
	"github.com/limaJavier/seatplan/internal/sat"
)

var (
	config model.Config

	validStrategies = []string{"sat", "greedy"}
	validSolvers    = []string{"gophersat", "kissat"}
	seaters         = map[string]func(sat.Solver) model.Seater{
		"sat": func(solver sat.Solver) model.Seater {
			return model.NewSatSeaterWithConfig(solver, config)
		},
		"greedy": func(sat.Solver) model.Seater {
			return model.NewGreedySeater()
		},
	}
	solvers = map[string]func() sat.Solver{
		"gophersat": sat.NewGophersatSolver,
		"kissat":    sat.NewKissatSolver,
	}
)

type output struct {
	Assignments []model.Assignment `json:"assignments"`
	Diagnostics model.Diagnostics  `json:"diagnostics"`
}

func main() {
	// Define arguments
	strategyPtr := flag.String("strategy", "sat", `Strategy to build the seating. Allowed values are:
- "sat" (Capacity, separation and restrictions are guaranteed and room usage is minimized) and
- "greedy" (First-fit heuristic; fast, but room usage is not minimized and it may fail on seatable inputs), where "sat" is the default`)
	solverPtr := flag.String("solver", "gophersat", "Solver to use with the \"sat\" strategy. Allowed values are: \"gophersat\", \"kissat\", where \"gophersat\" is the default")
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	timeoutPtr := flag.Int("timeout", 0, "Wall-clock budget in seconds; overrides the input file's timeoutSeconds")
	workersPtr := flag.Int("workers", model.DefaultConfig.Workers, "Parallel search workers")
	capPtr := flag.Int("cap", model.DefaultConfig.SeparationCap, "Ceiling on emitted separation constraints")
	symmetryPtr := flag.Bool("symmetry", false, "Order usage of identical rooms to prune symmetric seatings")
	renderPtr := flag.Bool("render", false, "Print a seat map of every used room to the Standard Error")
	flag.Parse()
	strategy := strings.ToLower(*strategyPtr)
	solverStr := strings.ToLower(*solverPtr)
	filePath := *filePathPtr

	// Validate arguments
	if !slices.Contains(validStrategies, strategy) {
		log.Fatalf("%v is not a valid strategy", strategy)
	} else if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if *workersPtr < 1 {
		log.Fatalf("workers must be positive: %v", *workersPtr)
	} else if *capPtr < 1 {
		log.Fatalf("cap must be positive: %v", *capPtr)
	}

	config = model.Config{
		Workers:       *workersPtr,
		SeparationCap: *capPtr,
		BreakSymmetry: *symmetryPtr,
	}

	// Extract input
	input, err := model.InputFromJson(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	if *timeoutPtr > 0 {
		input.TimeoutSeconds = *timeoutPtr
	}

	// Initialize engines
	seater := seaters[strategy](solvers[solverStr]())

	// Build seating
	assignments, diagnostics, err := seater.Build(input)

	log.Printf("status: %v, variables: %v, constraints: %v, separation: %v (cap hit: %v), solve time: %vms",
		diagnostics.Status, diagnostics.Variables, diagnostics.Constraints,
		diagnostics.SeparationConstraints, diagnostics.SeparationCapHit, diagnostics.SolveTimeMs)
	if diagnostics.SeparationCapHit {
		log.Printf("warning: separation cap reached; adjacent same-exam students are possible")
	}

	if err != nil {
		if errors.Is(err, model.ErrSolverInfeasible) ||
			errors.Is(err, model.ErrInsufficientCapacity) ||
			errors.Is(err, model.ErrRestrictedInsufficientCapacity) {
			log.Printf("no seating exists: %v", err)
			os.Exit(20)
		}
		log.Fatalf("an error occurred during seating construction: %v", err)
	}

	if *renderPtr {
		render(input, assignments)
	}

	// Write output
	bytes, err := json.MarshalIndent(output{Assignments: assignments, Diagnostics: diagnostics}, "", "  ")
	if err != nil {
		log.Fatalf("cannot serialize output: %v", err)
	}
	if *outFilePathPtr == "" {
		fmt.Println(string(bytes))
	} else if err := os.WriteFile(*outFilePathPtr, bytes, 0644); err != nil {
		log.Fatalf("cannot write output file: %v", err)
	}
}

// render prints one character grid per used room: "id(exam)" on occupied
// seats, "." for free seats and "x" for seats removed by the skip flags.
func render(input model.ModelInput, assignments []model.Assignment) {
	examOf := make(map[int64]string, len(input.Students))
	for _, student := range input.Students {
		examOf[student.ID] = student.Exam
	}

	for _, room := range input.Rooms {
		placed := lo.Filter(assignments, func(assignment model.Assignment, _ int) bool {
			return assignment.RoomID == room.ID
		})
		if len(placed) == 0 {
			continue
		}

		fmt.Fprintf(os.Stderr, "\nRoom %v (%v rows x %v cols, %v students):\n", room.ID, room.Rows, room.Cols, len(placed))

		grid := make([][]string, room.Rows)
		for r := range grid {
			grid[r] = make([]string, room.Cols)
			for c := range grid[r] {
				if (room.SkipRows && r%2 != 0) || (room.SkipCols && c%2 != 0) {
					grid[r][c] = "x"
				} else {
					grid[r][c] = "."
				}
			}
		}
		for _, assignment := range placed {
			grid[assignment.Row][assignment.Col] = fmt.Sprintf("%v(%v)", assignment.StudentID, examOf[assignment.StudentID])
		}

		for r := range room.Rows {
			cells := lo.Map(grid[r], func(cell string, _ int) string { return fmt.Sprintf("%-10v", cell) })
			fmt.Fprintln(os.Stderr, strings.Join(cells, " "))
		}
	}
}
