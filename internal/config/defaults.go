package config

import (
	_ "embed"
)

//go:embed defaults/chase.yaml
var defaultChaseYAML []byte

// DefaultChaseConfig returns the default maze chase configuration.
// It mirrors defaults/chase.yaml and is used when the embedded copy cannot be parsed.
func DefaultChaseConfig() ChaseConfig {
	return ChaseConfig{
		Maze: ChaseMaze{
			Layout: []string{
				"#####################",
				"#o.................o#",
				"#.#  #..##...#####$.#",
				"#.### .#  #..  #  ..#",
				"#.#  #.####..  #  ..#",
				"#.#  #.#  #..#####..#",
				"#...................#",
				"#.####.##HH##..####.#",
				"#o.....#HHHH#......o#",
				"#.####.######..####.#",
				"#...................#",
				"#.#....####..#...#..#",
				"#.#....#   .. # # ..#",
				"#.#....####..  #$ ..#",
				"#.#....#  $.. # # ..#",
				"#.####.####..#...#..#",
				"#o........o........o#",
				"#####################",
			},
			Player: ChasePlayer{
				Spawn: Cell{X: 12, Y: 15},
				Names: []string{"KAI", "LEX"},
			},
			Ghosts: []ChaseGhost{
				{ID: "blinky", Color: "red", Sprite: "images/dori.png", Spawn: Cell{X: 9, Y: 8}, Direction: "left"},
				{ID: "pinky", Color: "pink", Sprite: "images/nick.png", Spawn: Cell{X: 10, Y: 8}, Direction: "right"},
				{ID: "inky", Color: "cyan", Sprite: "images/aud.png", Spawn: Cell{X: 8, Y: 8}, Direction: "up"},
				{ID: "clyde", Color: "orange", Sprite: "images/dada.png", Spawn: Cell{X: 11, Y: 8}, Direction: "up"},
			},
		},
		Speeds: ChaseSpeeds{
			Player:      0.096,
			Ghost:       0.064,
			ScaredGhost: 0.048,
		},
		Timers: ChaseTimers{
			Power:  600,
			Freeze: 300,
		},
		Scoring: ChaseScoring{
			Pellet:      10,
			PowerPellet: 50,
			Bonus:       500,
			Ghost:       200,
		},
		Gameplay: ChaseGameplay{
			Lives:         3,
			Proximity:     0.8,
			RandomChance:  0.3,
			TurnTolerance: 0.55,
			AllowReverse:  true,
		},
		Perturb: ChasePerturb{
			Bonus: 0.01,
			Empty: 0.05,
			Power: 0.01,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultChaseYAML
}
