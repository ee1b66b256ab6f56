// Package board implements the sliding-tile merge grid: the move resolution
// algorithm, score accounting, and terminal-state detection. A Board is pure
// state; spawn decisions and session concerns (persistence, difficulty) live
// in other packages.
package board

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// WinningTile is the tile value that first sets the won flag.
const WinningTile = 2048

// Direction is one of the four travel directions of a move.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// AllDirections is the probe order used for terminal checks and search.
var AllDirections = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection turns a user-facing direction name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up", "u":
		return DirectionUp, nil
	case "down", "d":
		return DirectionDown, nil
	case "left", "l":
		return DirectionLeft, nil
	case "right", "r":
		return DirectionRight, nil
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

// Board holds the grid and its derived state. Zero cells are empty; every
// nonzero cell is a power of 2 >= 2. A Board must not be used from multiple
// goroutines without external serialization.
type Board struct {
	size     int
	grid     [][]int
	score    int
	highTile int
	gameOver bool
	won      bool
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	grid := make([][]int, size)
	for i := range grid {
		grid[i] = make([]int, size)
	}
	return &Board{size: size, grid: grid}
}

// Copy returns an independently owned deep copy. Search branches must copy
// before any hypothetical move or placement; sibling branches never share a
// grid.
func (b *Board) Copy() *Board {
	grid := make([][]int, b.size)
	for i := range grid {
		grid[i] = make([]int, b.size)
		copy(grid[i], b.grid[i])
	}
	cp := *b
	cp.grid = grid
	return &cp
}

func (b *Board) Size() int      { return b.size }
func (b *Board) Score() int     { return b.score }
func (b *Board) HighTile() int  { return b.highTile }
func (b *Board) GameOver() bool { return b.gameOver }
func (b *Board) Won() bool      { return b.won }

// Tile returns the value at (row, col).
func (b *Board) Tile(row, col int) int { return b.grid[row][col] }

// Grid returns the underlying grid. Callers must treat it as read-only;
// mutations go through Move and PlaceTile.
func (b *Board) Grid() [][]int { return b.grid }

// SetGrid installs an arbitrary position, deep-copying the given rows. It
// exists for tests and position setup; normal play only ever calls Move and
// PlaceTile. Score and flags are left alone, the high tile is recomputed.
func (b *Board) SetGrid(grid [][]int) {
	b.size = len(grid)
	b.grid = make([][]int, b.size)
	b.highTile = 0
	for i, row := range grid {
		b.grid[i] = make([]int, len(row))
		copy(b.grid[i], row)
		for _, v := range row {
			if v > b.highTile {
				b.highTile = v
			}
		}
	}
}

// PlaceTile writes value into a single cell. It is the raw mutation
// primitive used by real spawns and by hypothetical search branches alike;
// it performs no probability or difficulty checks.
func (b *Board) PlaceTile(row, col, value int) {
	b.grid[row][col] = value
	if value > b.highTile {
		b.highTile = value
	}
}

// EmptyCells enumerates the empty cells in row-major order. The order is
// load-bearing: spawn candidate ties resolve to the earliest cell.
func (b *Board) EmptyCells() []Cell {
	cells := []Cell{}
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.grid[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Move slides and merges every line toward the given direction. It returns
// false, mutating nothing, if the move would leave the grid unchanged or the
// direction is not one of the four valid values. On success it commits the
// new grid, adds the merge points to the score, and sets the won flag the
// first time the high tile reaches 2048.
func (b *Board) Move(dir Direction) bool {
	switch dir {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
	default:
		log.Error().Int("direction", int(dir)).Msg("invalid move direction")
		return false
	}

	vertical := dir == DirectionUp || dir == DirectionDown
	reversed := dir == DirectionDown || dir == DirectionRight

	newGrid := make([][]int, b.size)
	for i := range newGrid {
		newGrid[i] = make([]int, b.size)
	}

	gained := 0
	for i := 0; i < b.size; i++ {
		line := make([]int, b.size)
		for j := 0; j < b.size; j++ {
			if vertical {
				line[j] = b.grid[j][i]
			} else {
				line[j] = b.grid[i][j]
			}
		}
		if reversed {
			reverseLine(line)
		}
		resolved, sc := ResolveLine(line)
		gained += sc
		if reversed {
			reverseLine(resolved)
		}
		for j := 0; j < b.size; j++ {
			if vertical {
				newGrid[j][i] = resolved[j]
			} else {
				newGrid[i][j] = resolved[j]
			}
		}
	}

	changed := false
	for r := 0; r < b.size && !changed; r++ {
		for c := 0; c < b.size; c++ {
			if newGrid[r][c] != b.grid[r][c] {
				changed = true
				break
			}
		}
	}
	if !changed {
		return false
	}

	b.grid = newGrid
	b.score += gained
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.grid[r][c] > b.highTile {
				b.highTile = b.grid[r][c]
			}
		}
	}
	if b.highTile >= WinningTile && !b.won {
		b.won = true
		log.Debug().Int("score", b.score).Msg("reached the winning tile")
	}
	return true
}

// IsTerminal reports whether no move can change the grid: every cell is
// occupied and all four directions are rejected. Probes run on a disposable
// copy; a single successful probe short-circuits to false. The spawn
// engine uses this as its search cutoff.
func (b *Board) IsTerminal() bool {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.grid[r][c] == 0 {
				return false
			}
		}
	}
	for _, dir := range AllDirections {
		if b.Copy().Move(dir) {
			return false
		}
	}
	return true
}

// EndGame marks the board as finished.
func (b *Board) EndGame() { b.gameOver = true }

// ClearWon clears the won flag so the caller can keep playing past 2048.
func (b *Board) ClearWon() { b.won = false }

func (b *Board) String() string {
	var sb strings.Builder
	sep := "+" + strings.Repeat("------+", b.size) + "\n"
	sb.WriteString(sep)
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			v := b.grid[r][c]
			if v == 0 {
				sb.WriteString("|      ")
			} else {
				sb.WriteString(fmt.Sprintf("|%5d ", v))
			}
		}
		sb.WriteString("|\n")
		sb.WriteString(sep)
	}
	return sb.String()
}
