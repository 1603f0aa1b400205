package config

import (
	"fmt"
	"strings"
)

// maxSpeed keeps per-tick travel under half a cell so an entity can never
// cross a cell center (or into a wall) between two centered checks.
const maxSpeed = 0.5

// layoutRunes are the characters a maze layout may contain.
const layoutRunes = "#.o$H "

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that the configuration describes a playable session.
func (c ChaseConfig) Validate() error {
	if err := c.validateMaze(); err != nil {
		return err
	}

	dm := NewDifficultyManager(c.Difficulty)
	speeds := []struct {
		name string
		v    float64
	}{
		{"speeds.player", c.Speeds.Player},
		{"speeds.ghost", dm.MaxSpeed(c.Speeds.Ghost)},
		{"speeds.scared_ghost", dm.MaxSpeed(c.Speeds.ScaredGhost)},
	}
	for _, s := range speeds {
		if s.v <= 0 || s.v >= maxSpeed {
			return invalid("BAD_SPEED", "%s must be in (0, %.1f), got %g", s.name, maxSpeed, s.v)
		}
	}

	if c.Timers.Power < 0 || c.Timers.Freeze < 0 {
		return invalid("BAD_TIMER", "timers must not be negative")
	}
	if c.Scoring.Pellet < 0 || c.Scoring.PowerPellet < 0 || c.Scoring.Bonus < 0 || c.Scoring.Ghost < 0 {
		return invalid("BAD_SCORE", "point values must not be negative")
	}
	if c.Gameplay.Lives < 1 {
		return invalid("BAD_LIVES", "gameplay.lives must be at least 1, got %d", c.Gameplay.Lives)
	}
	if c.Gameplay.Proximity <= 0 || c.Gameplay.Proximity > 1 {
		return invalid("BAD_PROXIMITY", "gameplay.proximity must be in (0, 1], got %g", c.Gameplay.Proximity)
	}
	if c.Gameplay.TurnTolerance <= 0.5 || c.Gameplay.TurnTolerance > 1 {
		return invalid("BAD_TOLERANCE", "gameplay.turn_tolerance must be in (0.5, 1], got %g", c.Gameplay.TurnTolerance)
	}

	probs := []struct {
		name string
		v    float64
	}{
		{"gameplay.random_chance", c.Gameplay.RandomChance},
		{"perturb.bonus", c.Perturb.Bonus},
		{"perturb.empty", c.Perturb.Empty},
		{"perturb.power", c.Perturb.Power},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return invalid("BAD_PROBABILITY", "%s must be in [0, 1], got %g", p.name, p.v)
		}
	}

	return nil
}

func (c ChaseConfig) validateMaze() error {
	layout := c.Maze.Layout
	if len(layout) == 0 {
		return invalid("EMPTY_LAYOUT", "maze.layout has no rows")
	}
	width := len(layout[0])
	for y, row := range layout {
		if len(row) != width {
			return invalid("RAGGED_LAYOUT", "maze.layout row %d has width %d, expected %d", y, len(row), width)
		}
		for x, r := range row {
			if !strings.ContainsRune(layoutRunes, r) {
				return invalid("BAD_TILE", "maze.layout has unknown tile %q at (%d, %d)", r, x, y)
			}
		}
	}

	open := func(p Cell) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < len(layout) && layout[p.Y][p.X] != '#'
	}

	if !open(c.Maze.Player.Spawn) {
		return invalid("BAD_SPAWN", "player spawn (%d, %d) is not an open cell", c.Maze.Player.Spawn.X, c.Maze.Player.Spawn.Y)
	}
	if len(c.Maze.Ghosts) == 0 {
		return invalid("NO_GHOSTS", "maze.ghosts is empty")
	}

	seen := make(map[string]bool, len(c.Maze.Ghosts))
	for i, g := range c.Maze.Ghosts {
		if g.ID == "" {
			return invalid("BAD_GHOST", "ghost %d has no id", i)
		}
		if seen[g.ID] {
			return invalid("BAD_GHOST", "duplicate ghost id %q", g.ID)
		}
		seen[g.ID] = true
		if !open(g.Spawn) {
			return invalid("BAD_SPAWN", "ghost %q spawn (%d, %d) is not an open cell", g.ID, g.Spawn.X, g.Spawn.Y)
		}
		switch g.Direction {
		case "", "up", "down", "left", "right":
		default:
			return invalid("BAD_GHOST", "ghost %q has unknown direction %q", g.ID, g.Direction)
		}
	}
	return nil
}
