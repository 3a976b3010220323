package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/limaJavier/seatplan/internal/model"
	"github.com/limaJavier/seatplan/internal/sat"
)

// Synthetic workload: a few hundred students over a handful of mixed rooms,
// the shape where the model is large enough for the separation cap and the
// portfolio to matter.
func main() {
	studentsPtr := flag.Int("students", 200, "Number of students to generate")
	examsPtr := flag.Int("exams", 10, "Number of distinct exams")
	timeoutPtr := flag.Int("timeout", model.DefaultTimeoutSeconds, "Wall-clock budget in seconds")
	workersPtr := flag.Int("workers", model.DefaultConfig.Workers, "Parallel search workers")
	flag.Parse()

	rng := rand.New(rand.NewSource(42))

	students := make([]model.Student, *studentsPtr)
	for i := range students {
		students[i] = model.Student{
			ID:   int64(i + 1),
			Exam: fmt.Sprintf("Exam%v", rng.Intn(*examsPtr)+1),
		}
	}

	input := model.ModelInput{
		Students: students,
		Rooms: []model.Room{
			{ID: "RoomA", Rows: 8, Cols: 8, SkipRows: true},
			{ID: "RoomB", Rows: 10, Cols: 10, SkipRows: true},
			{ID: "RoomC", Rows: 10, Cols: 8},
			{ID: "RoomD", Rows: 8, Cols: 15, SkipRows: true},
			{ID: "RoomE", Rows: 12, Cols: 5},
		},
		Restrictions: map[string][]string{
			"Exam1": {"RoomA", "RoomB", "RoomC"},
			"Exam2": {"RoomA", "RoomD", "RoomE"},
		},
		TimeoutSeconds: *timeoutPtr,
	}

	seater := model.NewSatSeaterWithConfig(sat.NewGophersatSolver(), model.Config{
		Workers:       *workersPtr,
		SeparationCap: model.DefaultConfig.SeparationCap,
	})

	start := time.Now()
	assignments, diagnostics, err := seater.Build(input)
	elapsed := time.Since(start)

	if err != nil {
		log.Fatalf("benchmark run failed: %v", err)
	}

	fmt.Printf("Students: %v\n", diagnostics.Students)
	fmt.Printf("Capacity: %v\n", diagnostics.TotalCapacity)
	fmt.Printf("Variables: %v\n", diagnostics.Variables)
	fmt.Printf("Constraints: %v\n", diagnostics.Constraints)
	fmt.Printf("Separation: %v (cap hit: %v)\n", diagnostics.SeparationConstraints, diagnostics.SeparationCapHit)
	fmt.Printf("Status: %v\n", diagnostics.Status)
	fmt.Printf("Solve: %vms, total: %v\n", diagnostics.SolveTimeMs, elapsed)

	if !seater.Verify(input, assignments) && !diagnostics.SeparationCapHit {
		log.Fatal("seating failed verification")
	}
}
