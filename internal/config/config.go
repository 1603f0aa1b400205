// Package config provides YAML-based game configuration loading and
// difficulty management for the maze chase.
package config

// ChaseConfig contains all configuration for the maze chase.
type ChaseConfig struct {
	Maze       ChaseMaze        `yaml:"maze"`
	Speeds     ChaseSpeeds      `yaml:"speeds"`
	Timers     ChaseTimers      `yaml:"timers"`
	Scoring    ChaseScoring     `yaml:"scoring"`
	Gameplay   ChaseGameplay    `yaml:"gameplay"`
	Perturb    ChasePerturb     `yaml:"perturb"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ChaseMaze describes the single map and where entities spawn on it.
type ChaseMaze struct {
	Layout []string     `yaml:"layout"`
	Player ChasePlayer  `yaml:"player"`
	Ghosts []ChaseGhost `yaml:"ghosts"`
}

// Cell is an integer grid coordinate.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ChasePlayer defines the player's spawn and the names it may be given.
type ChasePlayer struct {
	Spawn Cell     `yaml:"spawn"`
	Names []string `yaml:"names"`
}

// ChaseGhost defines one pursuer.
type ChaseGhost struct {
	ID        string `yaml:"id"`
	Color     string `yaml:"color"`
	Sprite    string `yaml:"sprite"`
	Spawn     Cell   `yaml:"spawn"`
	Direction string `yaml:"direction"` // up, down, left, right or empty
}

// ChaseSpeeds are in grid cells per tick.
type ChaseSpeeds struct {
	Player      float64 `yaml:"player"`
	Ghost       float64 `yaml:"ghost"`
	ScaredGhost float64 `yaml:"scared_ghost"`
}

// ChaseTimers are in ticks.
type ChaseTimers struct {
	Power  int `yaml:"power"`
	Freeze int `yaml:"freeze"`
}

// ChaseScoring defines point values.
type ChaseScoring struct {
	Pellet      int `yaml:"pellet"`
	PowerPellet int `yaml:"power_pellet"`
	Bonus       int `yaml:"bonus"`
	Ghost       int `yaml:"ghost"`
}

// ChaseGameplay holds the remaining rule parameters.
type ChaseGameplay struct {
	Lives         int     `yaml:"lives"`
	Proximity     float64 `yaml:"proximity"`      // ghost hit distance in cells
	RandomChance  float64 `yaml:"random_chance"`  // chance a ghost ignores the player
	TurnTolerance float64 `yaml:"turn_tolerance"` // centered window as a fraction of speed
	AllowReverse  bool    `yaml:"allow_reverse"`  // player may reverse at a cell center
}

// ChasePerturb holds per-pellet probabilities applied once at reset, in order.
type ChasePerturb struct {
	Bonus float64 `yaml:"bonus"`
	Empty float64 `yaml:"empty"`
	Power float64 `yaml:"power"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or ticks at which max difficulty is reached
}

// ScalingConfig defines how parameters scale with difficulty.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // ghost speed at max = base * (1 + this)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
