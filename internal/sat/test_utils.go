package sat

import "math/rand/v2"

func GenerateInstance(variables int, clauses int) Instance {
	instance := Instance{
		Variables: variables,
		Clauses:   make([][]int, clauses),
	}

	for i := range clauses {
		instance.Clauses[i] = make([]int, 0, variables)
		for j := range variables {
			if rand.Float32() < 0.5 {
				sign := 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				instance.Clauses[i] = append(instance.Clauses[i], sign*(1+j))
			}
		}

		if len(instance.Clauses[i]) == 0 {
			sign := 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			instance.Clauses[i] = append(instance.Clauses[i], sign*(1+rand.IntN(variables)))
		}
	}

	return instance
}

func AssertSolution(instance Instance, model []bool) bool {
	if len(model) < instance.Variables {
		return false
	}

	holds := func(literal int) bool {
		if literal > 0 {
			return model[literal-1]
		}
		return !model[-literal-1]
	}

	// Check that all clauses are satisfied
	for _, clause := range instance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if holds(literal) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	// Check that no cardinality bound is exceeded
	for _, card := range instance.Cards {
		count := 0
		for _, literal := range card.Lits {
			if holds(literal) {
				count++
			}
		}
		if count > card.AtMost {
			return false
		}
	}

	return true
}
