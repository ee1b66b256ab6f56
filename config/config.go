// Package config loads runtime settings from flags, TWENTY48_* environment
// variables, and an optional twenty48.yaml file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Difficulty     string `mapstructure:"difficulty"`
	SearchDepth    int    `mapstructure:"search-depth"`
	BoardSize      int    `mapstructure:"board-size"`
	HighScoreFile  string `mapstructure:"highscore-file"`
	AutoplayLog    string `mapstructure:"autoplay-log"`
	AutoplayFormat string `mapstructure:"autoplay-format"`
	Debug          bool   `mapstructure:"debug"`
}

func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("twenty48", pflag.ContinueOnError)
	fs.String("difficulty", "medium", "spawn difficulty: easy, medium or hard")
	fs.Int("search-depth", 2, "expectimax search depth in plies")
	fs.Int("board-size", 4, "board dimension")
	fs.String("highscore-file", "./highscore.txt", "path of the high score record")
	fs.String("autoplay-log", "", "write per-game autoplay records to this file")
	fs.String("autoplay-format", "yaml", "autoplay log format: yaml or json")
	fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix("twenty48")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("twenty48")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}
