package sat

import (
	"fmt"
	"strings"
)

// Card is a cardinality constraint stating that at most AtMost of the
// literals in Lits may be true.
type Card struct {
	Lits   []int
	AtMost int
}

// Instance is a propositional model: plain disjunctive clauses, cardinality
// constraints and an optional set of literals whose true-count is minimized.
// Variables are numbered 1..Variables; a negative literal negates its variable.
type Instance struct {
	Variables int
	Clauses   [][]int
	Cards     []Card
	Minimize  []int
}

// CNF lowers the instance into plain clauses, encoding every cardinality
// constraint with a sequential counter. Auxiliary variables are allocated
// after Variables; the returned count covers them as well.
func (instance Instance) CNF() (clauses [][]int, variables int) {
	clauses = make([][]int, 0, len(instance.Clauses)+len(instance.Cards))
	clauses = append(clauses, instance.Clauses...)

	variables = instance.Variables
	for _, card := range instance.Cards {
		encoded, next := encodeCard(card, variables)
		clauses = append(clauses, encoded...)
		variables = next
	}

	return clauses, variables
}

func (instance Instance) ToDIMACS() string {
	clauses, variables := instance.CNF()

	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", variables, len(clauses))
	for _, clause := range clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// encodeCard lowers an at-most-k constraint into clauses through Sinz's
// sequential counter. Register variable r(i,j) holds when at least j of the
// first i literals do. Auxiliaries start right after the received variable
// count; the updated count is returned.
func encodeCard(card Card, variables int) (clauses [][]int, next int) {
	n, k := len(card.Lits), card.AtMost
	if k >= n {
		return nil, variables
	}
	if k <= 0 {
		clauses = make([][]int, 0, n)
		for _, lit := range card.Lits {
			clauses = append(clauses, []int{-lit})
		}
		return clauses, variables
	}

	register := func(i, j int) int {
		return variables + (i-1)*k + j
	}
	next = variables + (n-1)*k

	x := card.Lits
	clauses = append(clauses, []int{-x[0], register(1, 1)})
	for j := 2; j <= k; j++ {
		clauses = append(clauses, []int{-register(1, j)})
	}
	for i := 2; i <= n-1; i++ {
		clauses = append(clauses,
			[]int{-x[i-1], register(i, 1)},
			[]int{-register(i-1, 1), register(i, 1)})
		for j := 2; j <= k; j++ {
			clauses = append(clauses,
				[]int{-x[i-1], -register(i-1, j-1), register(i, j)},
				[]int{-register(i-1, j), register(i, j)})
		}
		clauses = append(clauses, []int{-x[i-1], -register(i-1, k)})
	}
	clauses = append(clauses, []int{-x[n-1], -register(n-1, k)})

	return clauses, next
}
