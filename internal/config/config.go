// Package config provides YAML-based configuration loading and speed presets
// for the Plinko game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-plinko/internal/plinko"
)

// PlinkoConfig contains all configuration for the Plinko game.
type PlinkoConfig struct {
	Animation AnimationConfig `yaml:"animation"`
	Board     BoardConfig     `yaml:"board"`
	History   HistoryConfig   `yaml:"history"`
}

// AnimationConfig controls how a drop is paced on screen.
type AnimationConfig struct {
	Enabled      bool `yaml:"enabled"`        // false drops one row per tick
	StartPauseMS int  `yaml:"start_pause_ms"` // pause at the top before the first row
	RowMS        int  `yaml:"row_ms"`         // time spent on each row-descent
}

// BoardConfig holds board defaults.
type BoardConfig struct {
	DefaultColumn int `yaml:"default_column"` // initial value of the column field
}

// HistoryConfig controls drop history persistence.
type HistoryConfig struct {
	Enabled     bool `yaml:"enabled"`
	RecentLimit int  `yaml:"recent_limit"` // rows shown by the scoreboard
}

// Validate reports the first invalid value in the config.
func (c PlinkoConfig) Validate() error {
	var errs []error
	if c.Animation.StartPauseMS < 0 {
		errs = append(errs, fmt.Errorf("animation.start_pause_ms must not be negative, got %d", c.Animation.StartPauseMS))
	}
	if c.Animation.RowMS < 0 {
		errs = append(errs, fmt.Errorf("animation.row_ms must not be negative, got %d", c.Animation.RowMS))
	}
	if !plinko.ValidStart(c.Board.DefaultColumn) {
		errs = append(errs, fmt.Errorf("board.default_column must be 1-%d, got %d", plinko.StartColumns, c.Board.DefaultColumn))
	}
	if c.History.RecentLimit < 0 {
		errs = append(errs, fmt.Errorf("history.recent_limit must not be negative, got %d", c.History.RecentLimit))
	}
	return errors.Join(errs...)
}

// StartPauseTicks converts the start pause into ticks at tickRate.
func (c PlinkoConfig) StartPauseTicks(tickRate int) int {
	if !c.Animation.Enabled {
		return 0
	}
	return MSToTicks(c.Animation.StartPauseMS, tickRate)
}

// RowTicks converts the per-row duration into ticks at tickRate. A row
// always takes at least one tick.
func (c PlinkoConfig) RowTicks(tickRate int) int {
	if !c.Animation.Enabled {
		return 1
	}
	return max(MSToTicks(c.Animation.RowMS, tickRate), 1)
}

// MSToTicks converts milliseconds to ticks, rounding to the nearest tick.
func MSToTicks(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	return (ms*tickRate + 500) / 1000
}
