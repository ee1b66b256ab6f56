package automatic

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameResult is one finished game, serializable to the batch log file for
// offline analysis.
type GameResult struct {
	Game       int    `json:"game" yaml:"game"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
	Score      int    `json:"score" yaml:"score"`
	HighTile   int    `json:"high_tile" yaml:"high_tile"`
	Moves      int    `json:"moves" yaml:"moves"`
	Won        bool   `json:"won" yaml:"won"`
}

// batchLog is the on-disk shape of a finished batch.
type batchLog struct {
	Summary Summary      `json:"summary" yaml:"summary"`
	Games   []GameResult `json:"games" yaml:"games"`
}

// WriteLog writes the batch to path in the given format ("yaml" or
// "json").
func WriteLog(path, format string, summary Summary, results []GameResult) error {
	blog := batchLog{Summary: summary, Games: results}
	var data []byte
	var err error
	switch format {
	case "yaml":
		data, err = yaml.Marshal(blog)
	case "json":
		data, err = json.MarshalIndent(blog, "", "  ")
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal batch log: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write batch log: %w", err)
	}
	return nil
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"%s: %d games, %d wins (%.1f%%, 95%% CI %.1f-%.1f%%), mean score %.1f (stdev %.1f), mean moves %.1f, best tile %d",
		s.Difficulty, s.Games, s.Wins, 100*s.WinRate, 100*s.WinRateLo95, 100*s.WinRateHi95,
		round2(s.MeanScore), round2(s.StdevScore), round2(s.MeanMoves), s.MaxHighTile)
}
