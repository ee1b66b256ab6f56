package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadHighScore reads the single-integer high score record at path. A
// missing or empty file reads as zero with no error.
func LoadHighScore(path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read high score file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("malformed high score record %q: %w", text, err)
	}
	return score, nil
}

// SaveHighScore overwrites the record at path. Last write wins; no
// atomicity beyond that is promised.
func SaveHighScore(path string, score int) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(score)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write high score file: %w", err)
	}
	return nil
}
