// Package shell implements the interactive terminal front end. It consumes
// the game session only through its public move/spawn/query surface.
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/avwaller/twenty48/ai/spawner"
	"github.com/avwaller/twenty48/automatic"
	"github.com/avwaller/twenty48/board"
	"github.com/avwaller/twenty48/config"
	"github.com/avwaller/twenty48/game"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game *game.Game
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new [size] - start a new game (default 4x4)\n")
	io.WriteString(w, "u, d, l, r - move up/down/left/right\n")
	io.WriteString(w, "show - redraw the board\n")
	io.WriteString(w, "set <easy|medium|hard> - change spawn difficulty\n")
	io.WriteString(w, "depth <n> - change the spawn search depth\n")
	io.WriteString(w, "continue - keep playing after reaching 2048\n")
	io.WriteString(w, "autoplay <n> [threads] - self-play n games at the current difficulty\n")
	io.WriteString(w, "exit - leave\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31m2048>\033[0m ",
		HistoryFile: "/tmp/twenty48_readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) newGame(size int) {
	difficulty, err := spawner.ParseDifficulty(sc.cfg.Difficulty)
	if err != nil {
		sc.showError(err)
		difficulty = spawner.Medium
	}
	sc.game = game.NewGame(game.Options{
		Size:          size,
		Difficulty:    difficulty,
		SearchDepth:   sc.cfg.SearchDepth,
		HighScorePath: sc.cfg.HighScoreFile,
		SpawnInitial:  true,
	})
	sc.showGame()
}

func (sc *ShellController) showGame() {
	b := sc.game.Board()
	sc.showMessage(b.String())
	sc.showMessage(fmt.Sprintf("Score: %d  High score: %d  Difficulty: %s (depth %d)",
		b.Score(), sc.game.HighScore(), sc.game.Difficulty(), sc.game.SearchDepth()))
	if b.Won() {
		sc.showMessage("You reached 2048! Type `continue` to keep playing.")
	}
	if b.GameOver() {
		sc.showMessage("Game over!")
	}
}

func (sc *ShellController) handleMove(dirName string) {
	if sc.game == nil {
		sc.showMessage("no game in progress; type `new` to start one")
		return
	}
	if sc.game.Board().GameOver() {
		sc.showMessage("the game is over; type `new` to start another")
		return
	}
	dir, err := board.ParseDirection(dirName)
	if err != nil {
		sc.showError(err)
		return
	}
	if !sc.game.Move(dir) {
		sc.showMessage("that move doesn't change anything")
		return
	}
	sc.game.SpawnRandomTile()
	if sc.game.CheckGameOver() {
		sc.game.EndGame()
	}
	sc.showGame()
}

func (sc *ShellController) handleAutoplay(fields []string) {
	if len(fields) < 2 {
		sc.showMessage("autoplay needs a game count, e.g. `autoplay 20`")
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		sc.showMessage("game count must be a positive integer")
		return
	}
	threads := 0
	if len(fields) > 2 {
		threads, err = strconv.Atoi(fields[2])
		if err != nil {
			sc.showMessage("thread count must be an integer")
			return
		}
	}
	difficulty, err := spawner.ParseDifficulty(sc.cfg.Difficulty)
	if err != nil {
		sc.showError(err)
		return
	}
	runner := automatic.NewGameRunner(difficulty, sc.cfg.SearchDepth, sc.cfg.BoardSize)
	summary, results, err := runner.PlayGames(n, threads)
	if err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(summary.String())
	if sc.cfg.AutoplayLog != "" {
		if err := automatic.WriteLog(sc.cfg.AutoplayLog, sc.cfg.AutoplayFormat, summary, results); err != nil {
			sc.showError(err)
		} else {
			sc.showMessage("wrote " + sc.cfg.AutoplayLog)
		}
	}
}

func (sc *ShellController) handleLine(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "new":
		size := sc.cfg.BoardSize
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 2 {
				sc.showMessage("board size must be an integer >= 2")
				return
			}
			size = n
		}
		sc.newGame(size)

	case "u", "d", "l", "r", "up", "down", "left", "right":
		sc.handleMove(fields[0])

	case "show":
		if sc.game == nil {
			sc.showMessage("no game in progress; type `new` to start one")
			return
		}
		sc.showGame()

	case "set":
		if len(fields) < 2 {
			sc.showMessage("set needs a difficulty: easy, medium or hard")
			return
		}
		difficulty, err := spawner.ParseDifficulty(fields[1])
		if err != nil {
			sc.showError(err)
			return
		}
		sc.cfg.Difficulty = difficulty.String()
		if sc.game != nil {
			sc.game.SetDifficulty(difficulty)
		}
		sc.showMessage("difficulty set to " + difficulty.String())

	case "depth":
		if len(fields) < 2 {
			sc.showMessage("depth needs a ply count")
			return
		}
		depth, err := strconv.Atoi(fields[1])
		if err != nil || depth < 1 {
			sc.showMessage("depth must be an integer >= 1")
			return
		}
		sc.cfg.SearchDepth = depth
		if sc.game != nil {
			sc.game.SetSearchDepth(depth)
		}

	case "continue":
		if sc.game == nil {
			sc.showMessage("no game in progress")
			return
		}
		sc.game.ContinuePlaying()
		sc.showMessage("keep going!")

	case "autoplay":
		sc.handleAutoplay(fields)

	case "help":
		usage(sc.l.Stderr())

	default:
		sc.showMessage("unknown command; type `help`")
	}
}

// Loop reads commands until exit or EOF, then signals the main goroutine.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" {
			break
		}
		sc.handleLine(line)
	}
	if sc.game != nil {
		if err := sc.game.SaveHighScore(); err != nil {
			log.Err(err).Msg("could not save high score on exit")
		}
	}
	sig <- syscall.SIGINT
}
