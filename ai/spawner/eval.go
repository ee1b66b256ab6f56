package spawner

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/avwaller/twenty48/board"
)

// Evaluator term weights. These are part of the engine's contract: changing
// them changes play behavior across the difficulty tiers.
const (
	scoreWeight        = 2.0
	emptyCellWeight    = 500.0
	monotonicityWeight = 100.0
	smoothnessWeight   = 30.0
	cornerBonus        = 1000.0
	offCornerPenalty   = 2000.0
	scatterWeight      = 50.0
	organizedBonus     = 200.0

	// tiles at or above this value count toward the scatter penalty
	highTileFloor = 64

	// share of consecutive diffs that must trend one way for a line to
	// count as organized; ties round in favor of organized
	organizedRatio = 0.7
)

// Evaluate scores a board state heuristically from the player's
// perspective; higher is better for the player. It is the leaf estimator
// of the expectimax search.
func Evaluate(b *board.Board) float64 {
	grid := b.Grid()
	n := b.Size()

	score := scoreWeight * float64(b.Score())

	empties := 0
	maxVal := 0
	for _, row := range grid {
		for _, v := range row {
			if v == 0 {
				empties++
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	score += emptyCellWeight * float64(empties)
	score += monotonicityWeight * monotonicity(grid)
	score += smoothnessWeight * smoothness(grid)

	if maxTileInCorner(grid, maxVal) {
		score += cornerBonus
	} else {
		score -= offCornerPenalty
	}

	score -= scatterWeight * highTileScatter(grid)

	for r := 0; r < n; r++ {
		if organized(grid[r]) {
			score += organizedBonus
		}
	}
	col := make([]int, n)
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			col[r] = grid[r][c]
		}
		if organized(col) {
			score += organizedBonus
		}
	}

	return score
}

// monotonicity accumulates, per axis, the total value change along each of
// the two directions and keeps the larger: grids whose values trend
// consistently one way along rows and columns score higher.
func monotonicity(grid [][]int) float64 {
	n := len(grid)
	var rowDec, rowInc, colDec, colInc float64

	for r := 0; r < n; r++ {
		for c := 0; c < n-1; c++ {
			if grid[r][c] > grid[r][c+1] {
				rowDec += float64(grid[r][c] - grid[r][c+1])
			} else {
				rowInc += float64(grid[r][c+1] - grid[r][c])
			}
		}
	}
	for c := 0; c < n; c++ {
		for r := 0; r < n-1; r++ {
			if grid[r][c] > grid[r+1][c] {
				colDec += float64(grid[r][c] - grid[r+1][c])
			} else {
				colInc += float64(grid[r+1][c] - grid[r][c])
			}
		}
	}
	return math.Max(rowDec, rowInc) + math.Max(colDec, colInc)
}

// smoothness is the negated sum of |log2(a)-log2(b)| over adjacent nonzero
// pairs; boards whose neighbors hold similar magnitudes score closer to
// zero.
func smoothness(grid [][]int) float64 {
	n := len(grid)
	total := 0.0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if grid[r][c] == 0 {
				continue
			}
			if c+1 < n && grid[r][c+1] != 0 {
				total -= math.Abs(math.Log2(float64(grid[r][c])) - math.Log2(float64(grid[r][c+1])))
			}
			if r+1 < n && grid[r+1][c] != 0 {
				total -= math.Abs(math.Log2(float64(grid[r][c])) - math.Log2(float64(grid[r+1][c])))
			}
		}
	}
	return total
}

// maxTileInCorner reports whether any corner holds the maximum value.
func maxTileInCorner(grid [][]int, maxVal int) bool {
	n := len(grid)
	corners := [4]int{grid[0][0], grid[0][n-1], grid[n-1][0], grid[n-1][n-1]}
	for _, v := range corners {
		if v == maxVal {
			return true
		}
	}
	return false
}

// highTileScatter is the population standard deviation over the flattened
// row and column coordinates of all tiles >= highTileFloor, or zero when
// fewer than two such tiles exist. Scattering large tiles across the grid
// is penalized.
func highTileScatter(grid [][]int) float64 {
	positions := []float64{}
	count := 0
	for r, row := range grid {
		for c, v := range row {
			if v >= highTileFloor {
				positions = append(positions, float64(r), float64(c))
				count++
			}
		}
	}
	if count < 2 {
		return 0
	}
	return stat.PopStdDev(positions, nil)
}

// organized reports whether a line reads as mostly sorted: at most one
// nonzero value, or at least 70% of consecutive nonzero diffs strictly
// increasing, or at least 70% strictly decreasing.
func organized(line []int) bool {
	nonzero := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			nonzero = append(nonzero, v)
		}
	}
	if len(nonzero) <= 1 {
		return true
	}
	increasing, decreasing := 0, 0
	for i := 0; i+1 < len(nonzero); i++ {
		if nonzero[i+1] > nonzero[i] {
			increasing++
		} else if nonzero[i+1] < nonzero[i] {
			decreasing++
		}
	}
	threshold := organizedRatio * float64(len(nonzero)-1)
	return float64(increasing) >= threshold || float64(decreasing) >= threshold
}
