// Package game ties the board and the spawn engine into a playable
// session: initial spawns, difficulty changes, game-over detection, and
// high-score persistence. A Game doesn't care how it is driven; the shell,
// the self-play runner, and any other front end all consume this surface.
package game

import (
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/avwaller/twenty48/ai/spawner"
	"github.com/avwaller/twenty48/board"
)

const DefaultBoardSize = 4

// Options configures a new session. Zero values fall back to a 4x4 board,
// the default search depth, a frand-backed random source, and no high
// score persistence.
type Options struct {
	Size        int
	Difficulty  spawner.Difficulty
	SearchDepth int
	// HighScorePath is the plain-text integer record; empty disables
	// persistence (the self-play runner plays thousands of throwaway
	// games).
	HighScorePath string
	// SpawnInitial places the two starting tiles. Off for tests and for
	// callers that install a position first.
	SpawnInitial bool
	Rand         spawner.RandSource
}

// Game owns one board and its spawner. Like the board itself it is not
// safe for concurrent use.
type Game struct {
	board         *board.Board
	spawner       *spawner.Spawner
	rng           spawner.RandSource
	highScore     int
	highScorePath string
}

// NewGame creates a session. A missing or empty high-score record reads as
// zero; an unreadable one is logged and ignored, construction never fails.
func NewGame(opts Options) *Game {
	if opts.Size <= 0 {
		opts.Size = DefaultBoardSize
	}
	if opts.Rand == nil {
		opts.Rand = frand.New()
	}
	g := &Game{
		board:         board.NewBoard(opts.Size),
		rng:           opts.Rand,
		highScorePath: opts.HighScorePath,
	}
	g.spawner = spawner.New(opts.Difficulty, opts.SearchDepth, opts.Rand)

	if g.highScorePath != "" {
		hs, err := LoadHighScore(g.highScorePath)
		if err != nil {
			log.Warn().Err(err).Str("path", g.highScorePath).Msg("could not load high score")
		}
		g.highScore = hs
	}

	if opts.SpawnInitial {
		g.SpawnRandomTile()
		g.SpawnRandomTile()
	}
	return g
}

func (g *Game) Board() *board.Board            { return g.board }
func (g *Game) Difficulty() spawner.Difficulty { return g.spawner.Difficulty() }
func (g *Game) SearchDepth() int               { return g.spawner.SearchDepth() }
func (g *Game) HighScore() int                 { return g.highScore }

// Move applies a player move and keeps the running high score current.
func (g *Game) Move(dir board.Direction) bool {
	if !g.board.Move(dir) {
		return false
	}
	if g.board.Score() > g.highScore {
		g.highScore = g.board.Score()
	}
	return true
}

// SpawnRandomTile delegates to the configured spawn engine.
func (g *Game) SpawnRandomTile() bool {
	return g.spawner.Spawn(g.board)
}

// CheckGameOver probes all four directions on a disposable copy. When no
// move remains it persists the high score and returns true; callers decide
// when to mark the board finished via EndGame.
func (g *Game) CheckGameOver() bool {
	probe := g.board.Copy()
	for _, dir := range board.AllDirections {
		if probe.Move(dir) {
			return false
		}
	}
	if err := g.SaveHighScore(); err != nil {
		log.Err(err).Msg("could not save high score")
	}
	return true
}

// EndGame marks the session finished.
func (g *Game) EndGame() {
	g.board.EndGame()
	log.Info().Int("score", g.board.Score()).Int("high_tile", g.board.HighTile()).Msg("game over")
}

// ContinuePlaying clears the won flag so play continues past 2048.
func (g *Game) ContinuePlaying() { g.board.ClearWon() }

// SetDifficulty swaps the spawn engine in place, preserving the prior
// search depth (Hard still forces its own depth).
func (g *Game) SetDifficulty(d spawner.Difficulty) {
	g.spawner = spawner.New(d, g.spawner.SearchDepth(), g.rng)
}

// SetSearchDepth rebuilds the spawn engine with a new depth.
func (g *Game) SetSearchDepth(depth int) {
	g.spawner = spawner.New(g.spawner.Difficulty(), depth, g.rng)
}

// SaveHighScore writes the high-score record, if a path is configured.
func (g *Game) SaveHighScore() error {
	if g.highScorePath == "" {
		return nil
	}
	return SaveHighScore(g.highScorePath, g.highScore)
}
