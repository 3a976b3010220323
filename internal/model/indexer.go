package model

// Indexer gives a unique SAT variable to a combination of seating variable's
// attributes and vice versa. Variables are 1-based, as DIMACS requires.
type Indexer interface {
	// Returns the variable for student s seated at position p of room k
	Index(student, room, position int) int
	// Returns the combination of attributes behind a variable
	Attributes(index int) (student, room, position int)
}

func NewIndexer(students, rooms, positions int) Indexer {
	return &sortedIndexer{
		students:  students,
		rooms:     rooms,
		positions: positions,
	}
}
