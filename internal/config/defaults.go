package config

import (
	_ "embed"
)

//go:embed defaults/plinko.yaml
var defaultPlinkoYAML []byte

// DefaultPlinkoConfig returns the default Plinko configuration.
func DefaultPlinkoConfig() PlinkoConfig {
	return PlinkoConfig{
		Animation: AnimationConfig{
			Enabled:      true,
			StartPauseMS: 750,
			RowMS:        500,
		},
		Board: BoardConfig{
			DefaultColumn: 1,
		},
		History: HistoryConfig{
			Enabled:     true,
			RecentLimit: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlinkoYAML
}
