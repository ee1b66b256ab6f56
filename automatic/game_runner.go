// Package automatic plays unattended games of 2048, mainly to measure how
// the spawn difficulty tiers shift player outcomes. Each game runs on its
// own board, so batches parallelize freely even though a single engine is
// strictly single-threaded.
package automatic

import (
	"math"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/avwaller/twenty48/ai/spawner"
	"github.com/avwaller/twenty48/board"
	"github.com/avwaller/twenty48/game"
	"github.com/avwaller/twenty48/stats"
)

// maxMovesPerGame bounds runaway games; a 4x4 game ends well before this.
const maxMovesPerGame = 20000

// GameRunner is the master struct for the self-play logic.
type GameRunner struct {
	difficulty  spawner.Difficulty
	searchDepth int
	boardSize   int
}

// NewGameRunner instantiates a runner for one difficulty tier.
func NewGameRunner(difficulty spawner.Difficulty, searchDepth, boardSize int) *GameRunner {
	if boardSize <= 0 {
		boardSize = game.DefaultBoardSize
	}
	return &GameRunner{difficulty: difficulty, searchDepth: searchDepth, boardSize: boardSize}
}

// bestMove greedily picks the direction whose resulting board evaluates
// best; this stands in for the human player the spawn engine searches
// against.
func bestMove(b *board.Board) (board.Direction, bool) {
	best := 0.0
	var bestDir board.Direction
	found := false
	for _, dir := range board.AllDirections {
		cp := b.Copy()
		if !cp.Move(dir) {
			continue
		}
		if v := spawner.Evaluate(cp); !found || v > best {
			best = v
			bestDir = dir
			found = true
		}
	}
	return bestDir, found
}

// playGame runs a single game to completion.
func (r *GameRunner) playGame(gameNum int) GameResult {
	g := game.NewGame(game.Options{
		Size:         r.boardSize,
		Difficulty:   r.difficulty,
		SearchDepth:  r.searchDepth,
		SpawnInitial: true,
	})

	moves := 0
	for moves < maxMovesPerGame {
		dir, ok := bestMove(g.Board())
		if !ok {
			break
		}
		if !g.Move(dir) {
			break
		}
		moves++
		g.SpawnRandomTile()
		if g.CheckGameOver() {
			g.EndGame()
			break
		}
	}

	res := GameResult{
		Game:       gameNum,
		Difficulty: r.difficulty.String(),
		Score:      g.Board().Score(),
		HighTile:   g.Board().HighTile(),
		Moves:      moves,
		Won:        g.Board().Won(),
	}
	log.Debug().
		Int("game", gameNum).
		Int("score", res.Score).
		Int("high_tile", res.HighTile).
		Int("moves", moves).
		Msg("finished self-play game")
	return res
}

// PlayGames runs n games across at most threads goroutines and returns the
// per-game results plus an aggregate summary. threads <= 0 uses NumCPU.
func (r *GameRunner) PlayGames(n, threads int) (Summary, []GameResult, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	results := make([]GameResult, n)

	var eg errgroup.Group
	eg.SetLimit(threads)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			results[i] = r.playGame(i)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Summary{}, nil, err
	}
	return summarize(r.difficulty, results), results, nil
}

// Summary aggregates a batch of finished games.
type Summary struct {
	Difficulty  string  `json:"difficulty" yaml:"difficulty"`
	Games       int     `json:"games" yaml:"games"`
	Wins        int     `json:"wins" yaml:"wins"`
	WinRate     float64 `json:"win_rate" yaml:"win_rate"`
	WinRateLo95 float64 `json:"win_rate_lo95" yaml:"win_rate_lo95"`
	WinRateHi95 float64 `json:"win_rate_hi95" yaml:"win_rate_hi95"`
	MeanScore   float64 `json:"mean_score" yaml:"mean_score"`
	StdevScore  float64 `json:"stdev_score" yaml:"stdev_score"`
	MeanMoves   float64 `json:"mean_moves" yaml:"mean_moves"`
	MaxHighTile int     `json:"max_high_tile" yaml:"max_high_tile"`
}

func summarize(difficulty spawner.Difficulty, results []GameResult) Summary {
	var scoreStats, moveStats stats.Statistic
	wins := 0
	maxHighTile := 0
	for _, res := range results {
		scoreStats.Push(float64(res.Score))
		moveStats.Push(float64(res.Moves))
		if res.Won {
			wins++
		}
		if res.HighTile > maxHighTile {
			maxHighTile = res.HighTile
		}
	}
	winRate := 0.0
	if len(results) > 0 {
		winRate = float64(wins) / float64(len(results))
	}
	lo, hi := stats.BinomialCI(wins, len(results), 95)
	return Summary{
		Difficulty:  difficulty.String(),
		Games:       len(results),
		Wins:        wins,
		WinRate:     winRate,
		WinRateLo95: lo,
		WinRateHi95: hi,
		MeanScore:   scoreStats.Mean(),
		StdevScore:  scoreStats.Stdev(),
		MeanMoves:   moveStats.Mean(),
		MaxHighTile: maxHighTile,
	}
}

// round2 is for display only.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
