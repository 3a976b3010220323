package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"github.com/limaJavier/seatplan/internal/sat"
)

// greedySeater is the heuristic alternative to the boolean model: first-fit
// placement exam by exam, then a bipartite-matching repair round for whatever
// first-fit left over. Fast and good enough when rooms are plentiful, but it
// does not minimize rooms and may give up on inputs a complete search can
// still seat.
type greedySeater struct{}

type seatRef struct {
	room     int
	position int
}

func (seater *greedySeater) Build(input ModelInput) ([]Assignment, Diagnostics, error) {
	start := time.Now()

	problem, err := newSeatingProblem(input)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	diagnostics := Diagnostics{
		Students:      len(problem.students),
		Rooms:         len(problem.rooms),
		TotalCapacity: problem.totalCapacity(),
		Status:        sat.Unknown.String(),
	}

	if len(problem.students) == 0 {
		diagnostics.Status = sat.Optimal.String()
		return []Assignment{}, diagnostics, nil
	}

	if err := problem.checkFeasibility(); err != nil {
		return nil, diagnostics, err
	}

	//** First-fit placement, largest exams first
	occupiedBy := make([][]int, len(problem.rooms)) // Room -> position -> student index, -1 when free
	for k := range problem.rooms {
		occupiedBy[k] = make([]int, len(problem.positions[k]))
		for p := range occupiedBy[k] {
			occupiedBy[k][p] = -1
		}
	}
	free := lo.Map(problem.positions, func(positions []Position, _ int) int { return len(positions) })

	examOrder := lo.Range(len(problem.exams))
	sort.SliceStable(examOrder, func(i, j int) bool {
		return len(problem.examStudents[examOrder[i]]) > len(problem.examStudents[examOrder[j]])
	})

	placement := make(map[int]seatRef, len(problem.students))
	leftovers := make([]int, 0)

	for _, e := range examOrder {
		// Emptiest allowed rooms first packs large exams where they fit
		rooms := lo.Filter(lo.Range(len(problem.rooms)), func(k int, _ int) bool { return problem.allowed[e][k] })
		sort.SliceStable(rooms, func(i, j int) bool { return free[rooms[i]] > free[rooms[j]] })

		for _, s := range problem.examStudents[e] {
			placed := false
			for _, k := range rooms {
				for p := range problem.positions[k] {
					if occupiedBy[k][p] != -1 || seater.conflicts(problem, occupiedBy, k, p, e) {
						continue
					}
					occupiedBy[k][p] = s
					free[k]--
					placement[s] = seatRef{room: k, position: p}
					placed = true
					break
				}
				if placed {
					break
				}
			}
			if !placed {
				leftovers = append(leftovers, s)
			}
		}
	}

	//** Matching repair for whatever first-fit left over
	if len(leftovers) > 0 {
		if err := seater.repair(problem, occupiedBy, placement, leftovers); err != nil {
			diagnostics.SolveTimeMs = time.Since(start).Milliseconds()
			return nil, diagnostics, err
		}
	}

	assignments := make([]Assignment, 0, len(problem.students))
	for s, student := range problem.students {
		seat := placement[s]
		position := problem.positions[seat.room][seat.position]
		assignments = append(assignments, Assignment{
			StudentID: student.ID,
			RoomID:    problem.rooms[seat.room].ID,
			Row:       position.Row,
			Col:       position.Col,
		})
	}

	diagnostics.SolveTimeMs = time.Since(start).Milliseconds()

	// Matching repair checks conflicts against fixed seats only; two repaired
	// same-exam students may still have landed adjacent to each other
	if !verify(input, assignments) {
		return nil, diagnostics, fmt.Errorf("first-fit repair produced an invalid seating: %w", ErrUnassignable)
	}

	diagnostics.Status = sat.Feasible.String()
	return assignments, diagnostics, nil
}

func (seater *greedySeater) Verify(input ModelInput, assignments []Assignment) bool {
	return verify(input, assignments)
}

// conflicts reports whether seating a student of the given exam at position p
// of room k would put them next to an already seated student of the same exam.
func (seater *greedySeater) conflicts(problem *seatingProblem, occupiedBy [][]int, k, p int, exam int) bool {
	position := problem.positions[k][p]
	for q, candidate := range problem.positions[k] {
		if abs(candidate.Row-position.Row)+abs(candidate.Col-position.Col) != 1 {
			continue
		}
		if neighbor := occupiedBy[k][q]; neighbor != -1 && problem.examOf[neighbor] == exam {
			return true
		}
	}
	return false
}

// repair matches leftover students to free seats of their allowed rooms that
// have no same-exam neighbor. First-fit already tried each leftover student on
// every such seat, and seats only fill up afterwards, so the matching finds no
// seat for any leftover student and repair returns ErrUnassignable.
func (seater *greedySeater) repair(problem *seatingProblem, occupiedBy [][]int, placement map[int]seatRef, leftovers []int) error {
	freeSeats := make([]seatRef, 0)
	for k := range problem.rooms {
		for p := range problem.positions[k] {
			if occupiedBy[k][p] == -1 {
				freeSeats = append(freeSeats, seatRef{room: k, position: p})
			}
		}
	}

	neighbors := func(studentAny any, seatAny any) (bool, error) {
		s := studentAny.(int)
		seat := seatAny.(seatRef)
		exam := problem.examOf[s]

		return problem.allowed[exam][seat.room] &&
			!seater.conflicts(problem, occupiedBy, seat.room, seat.position, exam), nil
	}

	studentsAny := lo.Map(leftovers, func(s int, _ int) any { return s })
	seatsAny := lo.Map(freeSeats, func(seat seatRef, _ int) any { return seat })

	graph, err := bipartitegraph.NewBipartiteGraph(studentsAny, seatsAny, neighbors)
	if err != nil {
		return err
	}

	matching := graph.LargestMatching()
	if len(matching) < len(leftovers) {
		return fmt.Errorf("%v students have no conflict-free seat left: %w", len(leftovers)-len(matching), ErrUnassignable)
	}

	for _, edge := range matching {
		studentIndex, seatIndex := edge.Node1, edge.Node2-len(leftovers)
		s, seat := leftovers[studentIndex], freeSeats[seatIndex]

		occupiedBy[seat.room][seat.position] = s
		placement[s] = seat
	}

	return nil
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
