package sat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDIMACS(t *testing.T) {
	// Arrange
	instance := Instance{
		Variables: 3,
		Clauses:   [][]int{{1, -2}, {2, 3}},
	}

	// Act
	dimacs := instance.ToDIMACS()

	// Assert
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n2 3 0\n", dimacs)
}

func TestToDIMACSAllocatesAuxiliaries(t *testing.T) {
	// Arrange
	instance := Instance{
		Variables: 4,
		Clauses:   [][]int{{1, 2, 3, 4}},
		Cards:     []Card{{Lits: []int{1, 2, 3, 4}, AtMost: 2}},
	}

	// Act
	dimacs := instance.ToDIMACS()

	// Assert: the sequential counter adds (n-1)*k = 6 register variables
	header := strings.SplitN(dimacs, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "p cnf 10 "))
}

func TestEncodeCardTrivial(t *testing.T) {
	// A bound at or above the literal count constrains nothing
	clauses, next := encodeCard(Card{Lits: []int{1, 2}, AtMost: 2}, 5)
	assert.Empty(t, clauses)
	assert.Equal(t, 5, next)

	// A zero bound forces every literal false
	clauses, next = encodeCard(Card{Lits: []int{1, -2, 3}, AtMost: 0}, 5)
	assert.Equal(t, [][]int{{-1}, {2}, {-3}}, clauses)
	assert.Equal(t, 5, next)
}

func TestEncodeCardSemantics(t *testing.T) {
	solver := NewGophersatSolver()

	// The counter encoding must admit exactly the bounded assignments: force
	// subsets of {1..4} true through unit clauses and decide the lowered CNF
	force := func(trueVars []int, falseVars []int) Status {
		instance := Instance{
			Variables: 4,
			Cards:     []Card{{Lits: []int{1, 2, 3, 4}, AtMost: 2}},
		}
		for _, v := range trueVars {
			instance.Clauses = append(instance.Clauses, []int{v})
		}
		for _, v := range falseVars {
			instance.Clauses = append(instance.Clauses, []int{-v})
		}

		clauses, variables := instance.CNF()
		result, err := solver.Solve(Instance{Variables: variables, Clauses: clauses}, Options{})
		assert.Nil(t, err)
		return result.Status
	}

	assert.Equal(t, Optimal, force([]int{1, 3}, []int{2, 4}))
	assert.Equal(t, Optimal, force([]int{2, 4}, []int{1, 3}))
	assert.Equal(t, Infeasible, force([]int{1, 2, 3}, nil))
	assert.Equal(t, Infeasible, force([]int{1, 2, 4}, nil))
}
