package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := ParseChase(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultChaseConfig(), cfg)
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultChaseConfig().Validate())
}

func TestLoadChaseCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chase.yaml")
	data := []byte("gameplay:\n  lives: 7\ntimers:\n  power: 120\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadChase(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Gameplay.Lives)
	assert.Equal(t, 120, cfg.Timers.Power)
	// Untouched sections keep their defaults.
	assert.Equal(t, 300, cfg.Timers.Freeze)
	assert.Len(t, cfg.Maze.Ghosts, 4)
}

func TestLoadChaseCustomPathErrors(t *testing.T) {
	_, err := LoadChase(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speeds:\n  player: 2.0\n"), 0o600))
	_, err = LoadChase(path)
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "BAD_SPEED", verr.Code)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ChaseConfig)
		code   string
	}{
		{"empty layout", func(c *ChaseConfig) { c.Maze.Layout = nil }, "EMPTY_LAYOUT"},
		{"ragged layout", func(c *ChaseConfig) { c.Maze.Layout = []string{"###", "#.", "###"} }, "RAGGED_LAYOUT"},
		{"unknown tile", func(c *ChaseConfig) { c.Maze.Layout[1] = "#x.................o#" }, "BAD_TILE"},
		{"player in wall", func(c *ChaseConfig) { c.Maze.Player.Spawn = Cell{X: 0, Y: 0} }, "BAD_SPAWN"},
		{"player out of bounds", func(c *ChaseConfig) { c.Maze.Player.Spawn = Cell{X: 99, Y: 1} }, "BAD_SPAWN"},
		{"no ghosts", func(c *ChaseConfig) { c.Maze.Ghosts = nil }, "NO_GHOSTS"},
		{"duplicate ghost", func(c *ChaseConfig) { c.Maze.Ghosts[1].ID = c.Maze.Ghosts[0].ID }, "BAD_GHOST"},
		{"bad ghost direction", func(c *ChaseConfig) { c.Maze.Ghosts[0].Direction = "north" }, "BAD_GHOST"},
		{"zero speed", func(c *ChaseConfig) { c.Speeds.Ghost = 0 }, "BAD_SPEED"},
		{"scaled speed too fast", func(c *ChaseConfig) {
			c.Speeds.Ghost = 0.3
			c.Difficulty.Enabled = true
			c.Difficulty.Scaling.SpeedMultiplier = 1.0
		}, "BAD_SPEED"},
		{"negative timer", func(c *ChaseConfig) { c.Timers.Freeze = -1 }, "BAD_TIMER"},
		{"no lives", func(c *ChaseConfig) { c.Gameplay.Lives = 0 }, "BAD_LIVES"},
		{"tolerance too small", func(c *ChaseConfig) { c.Gameplay.TurnTolerance = 0.5 }, "BAD_TOLERANCE"},
		{"probability", func(c *ChaseConfig) { c.Perturb.Empty = 1.5 }, "BAD_PROBABILITY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultChaseConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.code, verr.Code)
		})
	}
}

func TestApplyChasePreset(t *testing.T) {
	easy := DefaultChaseConfig()
	ApplyChasePreset(&easy, DifficultyEasy)
	assert.True(t, easy.Difficulty.Enabled)
	assert.Equal(t, 5, easy.Gameplay.Lives)
	assert.Equal(t, 780, easy.Timers.Power)

	hard := DefaultChaseConfig()
	ApplyChasePreset(&hard, DifficultyHard)
	assert.Equal(t, 2, hard.Gameplay.Lives)
	assert.Equal(t, 0.7, hard.Difficulty.InitialLevel)
	require.NoError(t, hard.Validate())

	fixed := DefaultChaseConfig()
	ApplyChasePreset(&fixed, DifficultyFixed)
	assert.False(t, fixed.Difficulty.Enabled)
	assert.Equal(t, 3, fixed.Gameplay.Lives)
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParsePreset("hard"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset("nightmare"))
}

func TestFingerprintStable(t *testing.T) {
	a := DefaultChaseConfig()
	b := DefaultChaseConfig()
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Len(t, Fingerprint(a), 16)

	b.Gameplay.Lives = 4
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestDifficultySpeed(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})

	assert.InDelta(t, 0.1, dm.Speed(0.1, 0, 0), 1e-12)
	assert.InDelta(t, 0.125, dm.Speed(0.1, 500, 0), 1e-12)
	assert.InDelta(t, 0.15, dm.Speed(0.1, 5000, 0), 1e-12) // clamped at max

	off := NewDifficultyManager(DifficultyConfig{Enabled: false, Scaling: ScalingConfig{SpeedMultiplier: 0.5}})
	assert.Equal(t, 0.1, off.Speed(0.1, 5000, 0))
	assert.Equal(t, 0.1, off.MaxSpeed(0.1))
}
