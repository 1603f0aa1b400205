package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadChase loads the maze chase configuration.
// Search order: customPath -> ~/.arcade/configs/chase.yaml -> ./configs/chase.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
// The result is validated; a custom file that fails validation is an error.
func LoadChase(customPath string) (ChaseConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ChaseConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseChase(data)
		if err != nil {
			return ChaseConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("chase.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseChase(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/chase.yaml"); err == nil {
		if cfg, err := ParseChase(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseChase(defaultChaseYAML)
	if err != nil {
		return DefaultChaseConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseChase decodes YAML over the defaults and validates the result.
func ParseChase(data []byte) (ChaseConfig, error) {
	cfg := DefaultChaseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ChaseConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ChaseConfig{}, err
	}
	return cfg, nil
}

// Fingerprint returns a short stable hash of the effective configuration.
// Replays record it so a replay is only verified against the rules it was played with.
func Fingerprint(cfg ChaseConfig) string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyChasePreset modifies the config based on a difficulty preset.
func ApplyChasePreset(cfg *ChaseConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Timers.Power = cfg.Timers.Power * 13 / 10
		cfg.Gameplay.RandomChance = 0.5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Timers.Power = cfg.Timers.Power * 7 / 10
		cfg.Timers.Freeze = cfg.Timers.Freeze / 2
		cfg.Gameplay.RandomChance = 0.15
	}
}
