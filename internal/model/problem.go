package model

import (
	"fmt"

	"github.com/samber/lo"
)

// seatingProblem is the normalized, indexed form of one Build invocation.
// Everything here is derived once from the input and read-only afterwards.
type seatingProblem struct {
	students     []Student
	rooms        []Room
	restrictions map[string][]string

	exams        []string // Exam names in first-appearance order
	examOf       []int    // Student index -> exam index
	examStudents [][]int  // Exam index -> student indices
	allowed      [][]bool // Exam index -> room index -> room is allowed
	restricted   []bool   // Exam index -> exam carries a restriction list

	positions [][]Position // Room index -> usable positions, row-major
	adjacency [][][2]int   // Room index -> adjacent position index pairs

	indexer   Indexer
	yBase     int // Variables above yBase are room-usage indicators
	variables int // Total variable count, room indicators included
}

func newSeatingProblem(input ModelInput) (*seatingProblem, error) {
	problem := &seatingProblem{
		students:     input.Students,
		rooms:        input.Rooms,
		restrictions: input.Restrictions,
	}

	//** Validate and index rooms
	roomIndex := make(map[string]int, len(input.Rooms))
	for k, room := range input.Rooms {
		if room.ID == "" {
			return nil, fmt.Errorf("room %v has an empty id", k)
		}
		if _, ok := roomIndex[room.ID]; ok {
			return nil, fmt.Errorf("duplicate room id %v", room.ID)
		}
		if room.Rows <= 0 || room.Cols <= 0 {
			return nil, fmt.Errorf("room %v must have positive dimensions", room.ID)
		}
		roomIndex[room.ID] = k
	}

	//** Validate and index students per exam
	examIndex := make(map[string]int)
	studentIDs := make(map[int64]bool, len(input.Students))
	problem.examOf = make([]int, len(input.Students))
	for s, student := range input.Students {
		if student.ID < 0 {
			return nil, fmt.Errorf("student id %v must be non-negative", student.ID)
		}
		if studentIDs[student.ID] {
			return nil, fmt.Errorf("duplicate student id %v", student.ID)
		}
		studentIDs[student.ID] = true

		exam, ok := examIndex[student.Exam]
		if !ok {
			exam = len(problem.exams)
			examIndex[student.Exam] = exam
			problem.exams = append(problem.exams, student.Exam)
			problem.examStudents = append(problem.examStudents, nil)
		}
		problem.examOf[s] = exam
		problem.examStudents[exam] = append(problem.examStudents[exam], s)
	}

	//** Resolve restrictions into per-exam room masks
	problem.allowed = make([][]bool, len(problem.exams))
	problem.restricted = make([]bool, len(problem.exams))
	for e, exam := range problem.exams {
		mask := make([]bool, len(input.Rooms))
		roomIDs, ok := input.Restrictions[exam]
		if !ok {
			for k := range mask {
				mask[k] = true
			}
		} else {
			problem.restricted[e] = true
			for _, roomID := range roomIDs {
				k, ok := roomIndex[roomID]
				if !ok {
					return nil, fmt.Errorf("restriction for exam %v names unknown room %v", exam, roomID)
				}
				mask[k] = true
			}
		}
		problem.allowed[e] = mask
	}

	//** Precompute usable positions and adjacency per room
	problem.positions = make([][]Position, len(input.Rooms))
	problem.adjacency = make([][][2]int, len(input.Rooms))
	maxPositions := 0
	for k, room := range input.Rooms {
		problem.positions[k] = roomPositions(room)
		problem.adjacency[k] = adjacentPairs(problem.positions[k])
		maxPositions = max(maxPositions, len(problem.positions[k]))
	}

	problem.indexer = NewIndexer(len(input.Students), len(input.Rooms), maxPositions)
	problem.yBase = len(input.Students) * len(input.Rooms) * maxPositions
	problem.variables = problem.yBase + len(input.Rooms)

	return problem, nil
}

// roomVariable is the usage indicator y[k]: true when any seat of room k is
// occupied, the quantity the objective minimizes.
func (problem *seatingProblem) roomVariable(room int) int {
	return problem.yBase + 1 + room
}

func (problem *seatingProblem) totalCapacity() int {
	return lo.SumBy(problem.positions, func(positions []Position) int { return len(positions) })
}

// checkFeasibility rejects inputs the solver could only prove infeasible the
// hard way: not enough seats overall, or not enough seats in the rooms a
// restricted exam is confined to.
func (problem *seatingProblem) checkFeasibility() error {
	if capacity := problem.totalCapacity(); capacity < len(problem.students) {
		return fmt.Errorf("%v students for %v usable seats: %w", len(problem.students), capacity, ErrInsufficientCapacity)
	}

	for e, exam := range problem.exams {
		if !problem.restricted[e] {
			continue
		}
		capacity := 0
		for k := range problem.rooms {
			if problem.allowed[e][k] {
				capacity += len(problem.positions[k])
			}
		}
		if capacity < len(problem.examStudents[e]) {
			return fmt.Errorf("exam %v seats %v students in rooms holding %v: %w",
				exam, len(problem.examStudents[e]), capacity, ErrRestrictedInsufficientCapacity)
		}
	}

	return nil
}

// extract decodes a model into one assignment per student, scanning each
// student's candidate variables in room order then position order. Any count
// other than exactly one true candidate means the solver response is broken.
func (problem *seatingProblem) extract(model []bool) ([]Assignment, error) {
	assignments := make([]Assignment, 0, len(problem.students))

	for s, student := range problem.students {
		count := 0
		var seat Assignment
		for k, room := range problem.rooms {
			if !problem.allowed[problem.examOf[s]][k] {
				continue
			}
			for p, position := range problem.positions[k] {
				if !model[problem.indexer.Index(s, k, p)-1] {
					continue
				}
				if count == 0 {
					seat = Assignment{StudentID: student.ID, RoomID: room.ID, Row: position.Row, Col: position.Col}
				}
				count++
			}
		}
		if count != 1 {
			return nil, fmt.Errorf("student %v holds %v seats: %w", student.ID, count, ErrSolverInvariantViolated)
		}
		assignments = append(assignments, seat)
	}

	return assignments, nil
}
