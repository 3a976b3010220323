package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/seatplan/internal/sat"
)

// trackingSolver fails the pre-solve rejection tests if the seater ever
// reaches the solver.
type trackingSolver struct {
	invoked bool
}

func (solver *trackingSolver) Solve(instance sat.Instance, options sat.Options) (sat.Result, error) {
	solver.invoked = true
	return sat.Result{Status: sat.Unknown}, nil
}

func TestInsufficientCapacityRejectedBeforeSolve(t *testing.T) {
	// Arrange: five students of one exam over a single 1x3 room
	solver := &trackingSolver{}
	seater := NewSatSeater(solver)
	input := ModelInput{
		Students: []Student{
			{ID: 0, Exam: "x"}, {ID: 1, Exam: "x"}, {ID: 2, Exam: "x"},
			{ID: 3, Exam: "x"}, {ID: 4, Exam: "x"},
		},
		Rooms: []Room{{ID: "R1", Rows: 1, Cols: 3}},
	}

	// Act
	assignments, diagnostics, err := seater.Build(input)

	// Assert
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Empty(t, assignments)
	assert.Equal(t, 3, diagnostics.TotalCapacity)
	assert.False(t, solver.invoked)
}

func TestSkippedSeatsReduceCapacity(t *testing.T) {
	// Arrange: 1x5 with skipped columns holds only three students
	solver := &trackingSolver{}
	seater := NewSatSeater(solver)
	input := ModelInput{
		Students: []Student{
			{ID: 0, Exam: "a"}, {ID: 1, Exam: "b"},
			{ID: 2, Exam: "c"}, {ID: 3, Exam: "d"},
		},
		Rooms: []Room{{ID: "R1", Rows: 1, Cols: 5, SkipCols: true}},
	}

	// Act
	_, diagnostics, err := seater.Build(input)

	// Assert
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, 3, diagnostics.TotalCapacity)
	assert.False(t, solver.invoked)
}

func TestRestrictedInsufficientCapacityRejectedBeforeSolve(t *testing.T) {
	// Arrange: "math" is confined to a room holding two of its three students
	solver := &trackingSolver{}
	seater := NewSatSeater(solver)
	input := ModelInput{
		Students: []Student{
			{ID: 0, Exam: "math"}, {ID: 1, Exam: "math"}, {ID: 2, Exam: "math"},
		},
		Rooms: []Room{
			{ID: "R1", Rows: 1, Cols: 2},
			{ID: "R2", Rows: 1, Cols: 4},
		},
		Restrictions: map[string][]string{"math": {"R1"}},
	}

	// Act
	_, _, err := seater.Build(input)

	// Assert
	assert.ErrorIs(t, err, ErrRestrictedInsufficientCapacity)
	assert.False(t, solver.invoked)
}

func TestEmptyRestrictionListMeansNoRoom(t *testing.T) {
	// Arrange
	solver := &trackingSolver{}
	seater := NewSatSeater(solver)
	input := ModelInput{
		Students:     []Student{{ID: 0, Exam: "art"}},
		Rooms:        []Room{{ID: "R1", Rows: 2, Cols: 2}},
		Restrictions: map[string][]string{"art": {}},
	}

	// Act
	_, _, err := seater.Build(input)

	// Assert
	assert.ErrorIs(t, err, ErrRestrictedInsufficientCapacity)
	assert.False(t, solver.invoked)
}

func TestInvalidInputsRejected(t *testing.T) {
	solver := &trackingSolver{}
	seater := NewSatSeater(solver)

	scenarios := []ModelInput{
		{Students: []Student{{ID: 0, Exam: "a"}, {ID: 0, Exam: "b"}}, Rooms: []Room{{ID: "R1", Rows: 2, Cols: 2}}},
		{Students: []Student{{ID: -1, Exam: "a"}}, Rooms: []Room{{ID: "R1", Rows: 2, Cols: 2}}},
		{Students: []Student{{ID: 0, Exam: "a"}}, Rooms: []Room{{ID: "R1", Rows: 0, Cols: 2}}},
		{Students: []Student{{ID: 0, Exam: "a"}}, Rooms: []Room{{ID: "R1", Rows: 2, Cols: 2}, {ID: "R1", Rows: 1, Cols: 1}}},
		{Students: []Student{{ID: 0, Exam: "a"}}, Rooms: []Room{{ID: "", Rows: 2, Cols: 2}}},
		{
			Students:     []Student{{ID: 0, Exam: "a"}},
			Rooms:        []Room{{ID: "R1", Rows: 2, Cols: 2}},
			Restrictions: map[string][]string{"a": {"missing"}},
		},
	}

	for i, input := range scenarios {
		_, _, err := seater.Build(input)
		assert.NotNil(t, err, "scenario %v", i)
		assert.False(t, solver.invoked, "scenario %v", i)
	}
}
