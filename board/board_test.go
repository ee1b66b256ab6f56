package board

import (
	"reflect"
	"testing"

	"github.com/matryer/is"
)

func TestNewBoardIsEmpty(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	is.Equal(b.Size(), 4)
	is.Equal(b.Score(), 0)
	is.Equal(b.HighTile(), 0)
	is.Equal(len(b.EmptyCells()), 16)
	is.True(!b.GameOver())
	is.True(!b.Won())
}

func TestMoveLeftMergesAndScores(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.SetGrid([][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 4},
		{2, 0, 0, 2},
		{0, 0, 0, 0},
	})
	is.True(b.Move(DirectionLeft))
	is.True(reflect.DeepEqual(b.Grid(), [][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	is.Equal(b.Score(), 16)
	is.Equal(b.HighTile(), 8)
}

func TestMoveAllDirections(t *testing.T) {
	is := is.New(t)
	start := [][]int{
		{2, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 0, 2},
	}
	type tc struct {
		dir  Direction
		want [][]int
	}
	cases := []tc{
		{DirectionUp, [][]int{
			{4, 0, 0, 4},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}},
		{DirectionDown, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{4, 0, 0, 4},
		}},
		{DirectionLeft, [][]int{
			{4, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{4, 0, 0, 0},
		}},
		{DirectionRight, [][]int{
			{0, 0, 0, 4},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 4},
		}},
	}
	for _, c := range cases {
		b := NewBoard(4)
		b.SetGrid(start)
		is.True(b.Move(c.dir))
		is.True(reflect.DeepEqual(b.Grid(), c.want))
		is.Equal(b.Score(), 8)
	}
}

func TestMoveRejectedWhenNothingChanges(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.SetGrid([][]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	// already fully compacted toward the left; a second left move without
	// an intervening spawn must be rejected
	is.True(!b.Move(DirectionLeft))
	is.Equal(b.Score(), 0)
	is.True(reflect.DeepEqual(b.Grid(), [][]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
}

func TestMoveIdempotentFalseAfterCompaction(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.SetGrid([][]int{
		{0, 2, 0, 2},
		{4, 0, 4, 0},
		{0, 0, 2, 0},
		{0, 8, 0, 8},
	})
	is.True(b.Move(DirectionLeft))
	is.True(!b.Move(DirectionLeft))
}

func TestMoveInvalidDirection(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.SetGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	is.True(!b.Move(Direction(42)))
	is.Equal(b.Tile(0, 0), 2)
	is.Equal(b.Score(), 0)
}

func TestMoveSetsWonAt2048(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.SetGrid([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	is.True(!b.Won())
	is.True(b.Move(DirectionLeft))
	is.True(b.Won())
	is.Equal(b.HighTile(), 2048)

	b.ClearWon()
	is.True(!b.Won())
}

func TestEmptyCellsRowMajorOrder(t *testing.T) {
	is := is.New(t)
	b := NewBoard(2)
	b.SetGrid([][]int{
		{0, 2},
		{0, 0},
	})
	is.True(reflect.DeepEqual(b.EmptyCells(), []Cell{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}))
}

func TestPlaceTileTracksHighTile(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.PlaceTile(1, 2, 8)
	is.Equal(b.Tile(1, 2), 8)
	is.Equal(b.HighTile(), 8)
	b.PlaceTile(0, 0, 4)
	is.Equal(b.HighTile(), 8)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.PlaceTile(0, 0, 2)
	cp := b.Copy()
	cp.PlaceTile(0, 0, 4)
	cp.PlaceTile(3, 3, 2)
	is.Equal(b.Tile(0, 0), 2)
	is.Equal(b.Tile(3, 3), 0)
}

func checkerboard(size int) [][]int {
	grid := make([][]int, size)
	for r := range grid {
		grid[r] = make([]int, size)
		for c := range grid[r] {
			if (r+c)%2 == 0 {
				grid[r][c] = 2
			} else {
				grid[r][c] = 4
			}
		}
	}
	return grid
}

func TestIsTerminal(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4)
	b.SetGrid(checkerboard(4))
	is.True(b.IsTerminal())

	// clearing any single cell makes the state non-terminal again
	grid := checkerboard(4)
	grid[2][1] = 0
	b.SetGrid(grid)
	is.True(!b.IsTerminal())

	// full but mergeable grids are not terminal either
	b.SetGrid([][]int{
		{2, 2, 4, 8},
		{4, 8, 16, 4},
		{8, 4, 8, 16},
		{4, 8, 16, 4},
	})
	is.True(!b.IsTerminal())
}

func TestIsTerminalEmptyBoard(t *testing.T) {
	is := is.New(t)
	is.True(!NewBoard(4).IsTerminal())
}
