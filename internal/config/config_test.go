package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parsePlinko(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultPlinkoConfig() {
		t.Errorf("embedded defaults %+v differ from hardcoded %+v", cfg, DefaultPlinkoConfig())
	}
}

func TestLoadPlinkoCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plinko.yaml")
	data := "animation:\n  row_ms: 120\nboard:\n  default_column: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlinko(path)
	if err != nil {
		t.Fatalf("LoadPlinko failed: %v", err)
	}
	if cfg.Animation.RowMS != 120 || cfg.Board.DefaultColumn != 5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Animation.StartPauseMS != 750 || !cfg.History.Enabled {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadPlinkoErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "animation: [", "failed to parse"},
		{"negative row", "animation:\n  row_ms: -1\n", "row_ms"},
		{"bad column", "board:\n  default_column: 12\n", "default_column"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadPlinko(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should name %s and mention %q", err, path, tc.want)
			}
		})
	}

	if _, err := LoadPlinko(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultPlinkoConfig().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	cfg := DefaultPlinkoConfig()
	cfg.Animation.StartPauseMS = -5
	cfg.History.RecentLimit = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, key := range []string{"start_pause_ms", "recent_limit"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should mention %s", err, key)
		}
	}
}

func TestSpeedPresets(t *testing.T) {
	tests := []struct {
		preset     SpeedPreset
		pauseTicks int
		rowTicks   int
	}{
		{SpeedClassic, 45, 30},
		{SpeedNormal, 18, 9},
		{SpeedFast, 6, 3},
		{SpeedInstant, 0, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlinkoConfig()
			ApplySpeedPreset(&cfg, tc.preset)

			if got := cfg.StartPauseTicks(60); got != tc.pauseTicks {
				t.Errorf("StartPauseTicks(60) = %d, want %d", got, tc.pauseTicks)
			}
			if got := cfg.RowTicks(60); got != tc.rowTicks {
				t.Errorf("RowTicks(60) = %d, want %d", got, tc.rowTicks)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParseSpeedPreset(t *testing.T) {
	for _, s := range []string{"classic", "FAST", " instant "} {
		if _, err := ParseSpeedPreset(s); err != nil {
			t.Errorf("ParseSpeedPreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseSpeedPreset("ludicrous"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestMSToTicks(t *testing.T) {
	tests := []struct {
		ms, rate, want int
	}{
		{500, 60, 30},
		{750, 60, 45},
		{10, 60, 1},
		{5, 60, 0},
		{0, 60, 0},
		{100, 0, 0},
	}

	for _, tc := range tests {
		if got := MSToTicks(tc.ms, tc.rate); got != tc.want {
			t.Errorf("MSToTicks(%d, %d) = %d, want %d", tc.ms, tc.rate, got, tc.want)
		}
	}
}

func TestConfigRoundTripsThroughYAML(t *testing.T) {
	out, err := yaml.Marshal(DefaultPlinkoConfig())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := parsePlinko(out)
	if err != nil {
		t.Fatalf("marshalled config does not parse: %v", err)
	}
	if cfg != DefaultPlinkoConfig() {
		t.Errorf("got %+v", cfg)
	}
}
