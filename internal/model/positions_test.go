package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomPositionsRowMajor(t *testing.T) {
	// Arrange
	room := Room{ID: "R1", Rows: 2, Cols: 3}

	// Act
	positions := roomPositions(room)

	// Assert
	assert.Equal(t, []Position{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}, positions)
}

func TestRoomPositionsSkipRows(t *testing.T) {
	positions := roomPositions(Room{ID: "R1", Rows: 4, Cols: 2, SkipRows: true})
	assert.Equal(t, []Position{
		{0, 0}, {0, 1},
		{2, 0}, {2, 1},
	}, positions)
}

func TestRoomPositionsSkipCols(t *testing.T) {
	positions := roomPositions(Room{ID: "R1", Rows: 1, Cols: 5, SkipCols: true})
	assert.Equal(t, []Position{{0, 0}, {0, 2}, {0, 4}}, positions)
}

func TestRoomPositionsSkipBoth(t *testing.T) {
	positions := roomPositions(Room{ID: "R1", Rows: 3, Cols: 3, SkipRows: true, SkipCols: true})
	assert.Equal(t, []Position{{0, 0}, {0, 2}, {2, 0}, {2, 2}}, positions)
}

func TestAdjacentPairs(t *testing.T) {
	// Arrange: a full 2x2 grid has all four orthogonal adjacencies
	positions := roomPositions(Room{ID: "R1", Rows: 2, Cols: 2})

	// Act
	pairs := adjacentPairs(positions)

	// Assert: positions are (0,0) (0,1) (1,0) (1,1)
	assert.ElementsMatch(t, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, pairs)
}

func TestAdjacentPairsVacuousUnderSkipping(t *testing.T) {
	// Skipping leaves kept seats at least two apart, so nothing is adjacent
	for _, room := range []Room{
		{ID: "R1", Rows: 1, Cols: 5, SkipCols: true},
		{ID: "R2", Rows: 5, Cols: 1, SkipRows: true},
		{ID: "R3", Rows: 5, Cols: 5, SkipRows: true, SkipCols: true},
	} {
		assert.Empty(t, adjacentPairs(roomPositions(room)), "room %v", room.ID)
	}
}

func TestAdjacentPairsPartialSkip(t *testing.T) {
	// Skipping only rows keeps horizontal neighbors within a kept row
	positions := roomPositions(Room{ID: "R1", Rows: 3, Cols: 2, SkipRows: true})

	pairs := adjacentPairs(positions)

	// Kept: (0,0) (0,1) (2,0) (2,1); only the in-row pairs remain
	assert.ElementsMatch(t, [][2]int{{0, 1}, {2, 3}}, pairs)
}

func TestUsable(t *testing.T) {
	room := Room{ID: "R1", Rows: 4, Cols: 4, SkipRows: true}

	assert.True(t, usable(room, 0, 1))
	assert.True(t, usable(room, 2, 3))
	assert.False(t, usable(room, 1, 0))
	assert.False(t, usable(room, 4, 0))
	assert.False(t, usable(room, -1, 0))
}
