// Package spawner implements the spawn decision engine: it chooses where
// and what value to place after every accepted move. Easy and Hard rank
// every empty cell with a depth-limited expectimax search over hypothetical
// board copies; Medium is the classic uniform random spawn.
package spawner

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/avwaller/twenty48/board"
)

const (
	spawnTwoProb  = 0.9
	spawnFourProb = 0.1

	// DefaultSearchDepth is the ply depth used when none is configured.
	DefaultSearchDepth = 2
	hardSearchDepth    = 3

	// maxChanceCells caps the branching factor of a chance node. Wider
	// boards get sampled, not enumerated; this bounds worst-case spawn
	// latency at the cost of an approximate expectation.
	maxChanceCells = 6
)

// Difficulty selects the spawn placement policy.
type Difficulty int

const (
	// Easy places tiles where the search says they help the player most.
	Easy Difficulty = iota
	// Medium places tiles uniformly at random, like the original game.
	Medium
	// Hard places tiles where the search says they hurt the player most.
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty maps a difficulty name to its enum value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("invalid difficulty %q", s)
}

// RandSource is the random capability the engine draws from. Production
// code passes nil and gets a frand-backed source; tests inject scripted
// sequences to make every draw deterministic.
type RandSource interface {
	Float64() float64
	Intn(n int) int
	Perm(n int) []int
}

// Spawner decides tile placements for one difficulty tier. It never
// mutates the caller's board until the final placement; all exploratory
// states are private copies.
type Spawner struct {
	difficulty  Difficulty
	searchDepth int
	rng         RandSource
}

// New creates a Spawner. A searchDepth below 1 falls back to the default,
// and Hard always searches at hardSearchDepth regardless of the argument.
// A nil rng gets a frand-backed source.
func New(difficulty Difficulty, searchDepth int, rng RandSource) *Spawner {
	if searchDepth < 1 {
		searchDepth = DefaultSearchDepth
	}
	if difficulty == Hard {
		searchDepth = hardSearchDepth
	}
	if rng == nil {
		rng = frand.New()
	}
	return &Spawner{difficulty: difficulty, searchDepth: searchDepth, rng: rng}
}

func (s *Spawner) Difficulty() Difficulty { return s.difficulty }
func (s *Spawner) SearchDepth() int       { return s.searchDepth }

type candidate struct {
	cell  board.Cell
	score float64
}

// Spawn places exactly one tile on the real board. It returns false, as a
// no-op, only when the board has no empty cell.
func (s *Spawner) Spawn(b *board.Board) bool {
	switch s.difficulty {
	case Medium:
		return s.spawnRandom(b)
	case Easy, Hard:
		return s.spawnSearched(b)
	}
	return false
}

// spawnRandom is the classic spawn: a uniformly random empty cell and a
// 2 with probability 0.9, a 4 otherwise.
func (s *Spawner) spawnRandom(b *board.Board) bool {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return false
	}
	cell := cells[s.rng.Intn(len(cells))]
	b.PlaceTile(cell.Row, cell.Col, s.drawTileValue())
	return true
}

// spawnSearched ranks every empty cell by its expectimax value for the
// player, then commits at the best cell (Easy) or the worst (Hard). Ties
// resolve to the earliest cell in enumeration order. The placed value is
// re-sampled 0.9/0.1 independently of the ranking: the search ranks
// positions, not outcomes.
func (s *Spawner) spawnSearched(b *board.Board) bool {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return false
	}

	candidates := make([]candidate, len(cells))
	for i, cell := range cells {
		two := s.evaluateSpawn(b, cell, 2)
		four := s.evaluateSpawn(b, cell, 4)
		candidates[i] = candidate{cell: cell, score: spawnTwoProb*two + spawnFourProb*four}
	}

	var chosen candidate
	if s.difficulty == Easy {
		chosen = lo.MaxBy(candidates, func(a, b candidate) bool { return a.score > b.score })
	} else {
		chosen = lo.MinBy(candidates, func(a, b candidate) bool { return a.score < b.score })
	}

	b.PlaceTile(chosen.cell.Row, chosen.cell.Col, s.drawTileValue())
	log.Debug().
		Str("difficulty", s.difficulty.String()).
		Int("row", chosen.cell.Row).
		Int("col", chosen.cell.Col).
		Float64("score", chosen.score).
		Msg("spawned tile")
	return true
}

func (s *Spawner) drawTileValue() int {
	if s.rng.Float64() < spawnTwoProb {
		return 2
	}
	return 4
}

// evaluateSpawn estimates the player's best achievable outcome after value
// appears at cell, by running expectimax from a private copy.
func (s *Spawner) evaluateSpawn(b *board.Board, cell board.Cell, value int) float64 {
	cp := b.Copy()
	cp.PlaceTile(cell.Row, cell.Col, value)
	return s.expectimax(cp, s.searchDepth, true)
}

// expectimax maximizes over player moves and averages over chance spawns,
// bottoming out at the heuristic evaluator.
func (s *Spawner) expectimax(b *board.Board, depth int, playerTurn bool) float64 {
	if depth == 0 || b.IsTerminal() {
		return Evaluate(b)
	}
	if playerTurn {
		return s.maxNode(b, depth)
	}
	return s.chanceNode(b, depth)
}

// maxNode models the player choosing their best available move. There is
// no pass: if no direction works, the current state is evaluated directly.
func (s *Spawner) maxNode(b *board.Board, depth int) float64 {
	best := 0.0
	moved := false
	for _, dir := range board.AllDirections {
		cp := b.Copy()
		if !cp.Move(dir) {
			continue
		}
		v := s.expectimax(cp, depth-1, false)
		if !moved || v > best {
			best = v
		}
		moved = true
	}
	if !moved {
		return Evaluate(b)
	}
	return best
}

// chanceNode averages over spawn outcomes. With more than maxChanceCells
// empty cells it samples that many uniformly without replacement and takes
// a plain average over the sample, per cell weighting the two tile values
// 0.9/0.1.
func (s *Spawner) chanceNode(b *board.Board, depth int) float64 {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return Evaluate(b)
	}
	if len(cells) > maxChanceCells {
		sampled := make([]board.Cell, 0, maxChanceCells)
		for _, idx := range s.rng.Perm(len(cells))[:maxChanceCells] {
			sampled = append(sampled, cells[idx])
		}
		cells = sampled
	}

	total := 0.0
	for _, cell := range cells {
		two := b.Copy()
		two.PlaceTile(cell.Row, cell.Col, 2)
		four := b.Copy()
		four.PlaceTile(cell.Row, cell.Col, 4)
		total += spawnTwoProb*s.expectimax(two, depth-1, true) +
			spawnFourProb*s.expectimax(four, depth-1, true)
	}
	return total / float64(len(cells))
}
