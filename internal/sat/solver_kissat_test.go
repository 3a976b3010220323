package sat

import (
	"log"
	"math/rand/v2"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSolution(t *testing.T) {
	assert.Equal(t, []int{1, -2, 3}, ParseSolution("c comment\ns SATISFIABLE\nv 1 -2 3 0\n"))
	assert.Equal(t, []int{1, -2, 3, -4}, ParseSolution("v 1 -2\nv 3 -4\nv 0\n"))
	assert.Empty(t, ParseSolution("s UNSATISFIABLE\n"))
}

func TestKissatSatisfiable(t *testing.T) {
	if _, err := exec.LookPath(kissatPath); err != nil {
		t.Skipf("%v binary not available", kissatPath)
	}

	solver := NewKissatSolver()
	unsatisfiableCount := 0

	for range 10 {
		variables := rand.IntN(100) + 1
		clauses := rand.IntN(200) + 1
		instance := GenerateInstance(variables, clauses)

		result, err := solver.Solve(instance, Options{Timeout: time.Minute})
		if err != nil {
			t.Errorf("an error occurred while solving an instance: %v", err)
		}

		if result.Status == Infeasible {
			unsatisfiableCount++
			continue
		}

		if !AssertSolution(instance, result.Model) {
			t.Error("Wrong answer")
		}
	}

	log.Printf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func TestKissatMinimize(t *testing.T) {
	if _, err := exec.LookPath(kissatPath); err != nil {
		t.Skipf("%v binary not available", kissatPath)
	}

	// Arrange
	instance := Instance{
		Variables: 3,
		Clauses:   [][]int{{1, 2}},
		Minimize:  []int{1, 2, 3},
	}

	// Act
	result, err := NewKissatSolver().Solve(instance, Options{Timeout: time.Minute})

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Optimal, result.Status)
	assert.Equal(t, 1, result.Cost)
}
