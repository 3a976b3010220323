package model

// verify checks a seating against the full post-solve contract:
// - exactly one assignment per student,
// - no two assignments on the same seat,
// - every seat usable under its room's skip flags,
// - restricted exams only in their allowed rooms,
// - no same-exam students on orthogonally adjacent seats.
func verify(input ModelInput, assignments []Assignment) bool {
	if len(assignments) != len(input.Students) {
		return false
	}

	roomByID := make(map[string]Room, len(input.Rooms))
	for _, room := range input.Rooms {
		roomByID[room.ID] = room
	}
	examOf := make(map[int64]string, len(input.Students))
	for _, student := range input.Students {
		examOf[student.ID] = student.Exam
	}

	type seat struct {
		roomID   string
		row, col int
	}
	occupant := make(map[seat]int64, len(assignments))
	seated := make(map[int64]bool, len(assignments))

	for _, assignment := range assignments {
		exam, known := examOf[assignment.StudentID]
		if !known || seated[assignment.StudentID] {
			return false
		}
		seated[assignment.StudentID] = true

		room, ok := roomByID[assignment.RoomID]
		if !ok || !usable(room, assignment.Row, assignment.Col) {
			return false
		}

		if allowedRooms, restricted := input.Restrictions[exam]; restricted {
			found := false
			for _, roomID := range allowedRooms {
				if roomID == assignment.RoomID {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}

		if _, taken := occupant[seat{assignment.RoomID, assignment.Row, assignment.Col}]; taken {
			return false
		}
		occupant[seat{assignment.RoomID, assignment.Row, assignment.Col}] = assignment.StudentID
	}

	// Separation: probe the four orthogonal neighbors of every seat
	for position, studentID := range occupant {
		exam := examOf[studentID]
		for _, delta := range [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
			neighbor := seat{position.roomID, position.row + delta[0], position.col + delta[1]}
			if other, taken := occupant[neighbor]; taken && examOf[other] == exam {
				return false
			}
		}
	}

	return true
}
