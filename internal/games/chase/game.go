// Package chase implements the maze chase: a player collects pellets on a
// grid while ghosts hunt it, until a power pellet turns the hunt around.
//
// The engine is a pure fixed-step simulation. One owner drives it through
// SetIntendedDirection, Tick and Snapshot; the registry adapter maps
// platform input frames onto those calls.
package chase

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game is one maze chase session.
type Game struct {
	cfg        config.ChaseConfig
	preset     config.DifficultyPreset
	fixed      bool // config supplied by the caller, not loaded on Reset
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand

	layout *Grid // pristine map, cloned on every session reset
	grid   *Grid
	motion Motion
	policy Policy

	player      Mover
	playerSpawn Vec
	playerName  string
	ghosts      []Ghost

	s      session
	tick   uint64
	events []Event

	loadErr error // why the last Reset fell back to the default config
}

// New creates a game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game bound to cfg. Reset only reseeds it.
func NewWithConfig(cfg config.ChaseConfig) (*Game, error) {
	g := &Game{fixed: true}
	if err := g.configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

func init() {
	registry.Register("chase", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "chase" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Maze Chase" }

// Config returns the effective config, presets included.
func (g *Game) Config() config.ChaseConfig { return g.cfg }

// Preset returns the difficulty preset applied on load, if any.
func (g *Game) Preset() config.DifficultyPreset { return g.preset }

// ConfigErr returns the error that made the last Reset fall back to the
// default config, or nil.
func (g *Game) ConfigErr() error { return g.loadErr }

// PlayerName returns the name drawn for this session.
func (g *Game) PlayerName() string { return g.playerName }

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase { return g.s.phase }

// configure validates cfg and derives everything that does not change
// between sessions.
func (g *Game) configure(cfg config.ChaseConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("chase: %w", err)
	}
	layout, err := ParseGrid(cfg.Maze.Layout)
	if err != nil {
		return err
	}

	g.cfg = cfg
	g.layout = layout
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.motion = Motion{Tolerance: cfg.Gameplay.TurnTolerance}
	g.policy = Policy{
		RandomChance: cfg.Gameplay.RandomChance,
		BaseSpeed:    cfg.Speeds.Ghost,
		ScaredSpeed:  cfg.Speeds.ScaredGhost,
	}
	g.playerSpawn = cellVec(cfg.Maze.Player.Spawn.X, cfg.Maze.Player.Spawn.Y)

	g.ghosts = make([]Ghost, len(cfg.Maze.Ghosts))
	for i, gc := range cfg.Maze.Ghosts {
		g.ghosts[i] = Ghost{
			ID:       gc.ID,
			Color:    gc.Color,
			Sprite:   gc.Sprite,
			Spawn:    cellVec(gc.Spawn.X, gc.Spawn.Y),
			SpawnDir: ParseDirection(gc.Direction),
		}
	}
	return nil
}

// Reset seeds the RNG from runtime.Seed and starts a fresh session.
// Games built with New reload their config first; a config that cannot be
// loaded or validated is replaced by the default and reported by ConfigErr.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixed {
		cfg, err := config.LoadChase(configPath)
		g.loadErr = err
		if err != nil {
			cfg = config.DefaultChaseConfig()
		}
		if difficultyPreset != "" {
			config.ApplyChasePreset(&cfg, difficultyPreset)
		}
		g.preset = difficultyPreset
		if err := g.configure(cfg); err != nil {
			// The built-in default always validates, so the second
			// configure only fails if DefaultChaseConfig is broken.
			g.preset = ""
			g.loadErr = errors.Join(g.loadErr, err, g.configure(config.DefaultChaseConfig()))
		}
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.ResetSession()
}

// ResetSession rebuilds the map, entities and session state, drawing from
// the session's RNG: perturbation first, then the player name.
func (g *Game) ResetSession() {
	g.grid = g.layout.Clone()
	g.grid.Perturb(g.rng, Perturbation{
		Bonus: g.cfg.Perturb.Bonus,
		Empty: g.cfg.Perturb.Empty,
		Power: g.cfg.Perturb.Power,
	})

	g.playerName = ""
	if names := g.cfg.Maze.Player.Names; len(names) > 0 {
		g.playerName = names[g.rng.Intn(len(names))]
	}

	g.s = session{lives: g.cfg.Gameplay.Lives, phase: PhasePaused}
	g.tick = 0
	g.events = g.events[:0]
	g.placeEntities()
}

// placeEntities puts the player and every ghost on their spawn cells.
func (g *Game) placeEntities() {
	g.player = Mover{Pos: g.playerSpawn, Speed: g.cfg.Speeds.Player}
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		gh.respawn()
		gh.Speed = g.cfg.Speeds.Ghost
		gh.Scared = false
		gh.Eaten = false
	}
}

// SetIntendedDirection queues the player's next heading. The last call
// before a tick wins. A real heading starts a paused session.
func (g *Game) SetIntendedDirection(d Direction) {
	if g.s.phase.Terminal() {
		return
	}
	g.player.Next = d
	if d != DirNone {
		g.start()
	}
}

// Tick advances the simulation by one fixed step. Motion is per tick, so dt
// is not used. Outside PhaseRunning nothing changes.
func (g *Game) Tick(_ time.Duration) {
	g.events = g.events[:0]
	if g.s.phase != PhaseRunning {
		return
	}
	g.tick++

	g.player = g.motion.Advance(g.player, g.grid, g.player.Speed, g.cfg.Gameplay.AllowReverse)
	g.collectTile()

	if g.s.freeze == 0 {
		g.moveGhosts()
	}

	hit := g.checkContacts()
	g.advanceTimers()
	g.settle(hit)
}

// moveGhosts lets each ghost decide at cell centers and then move.
func (g *Game) moveGhosts() {
	g.policy.BaseSpeed = g.difficulty.Speed(g.cfg.Speeds.Ghost, g.s.score, int(g.tick))
	prey := g.player.Pos

	for i := range g.ghosts {
		gh := &g.ghosts[i]
		speed := g.policy.Speed(gh)
		if g.motion.Centered(gh.Pos, speed) {
			gh.Next = g.policy.Decide(gh, g.grid, prey, g.rng)
		}
		gh.Mover = g.motion.Advance(gh.Mover, g.grid, speed, true)
	}
}

// Events returns what happened during the last tick.
func (g *Game) Events() []Event {
	out := make([]Event, len(g.events))
	copy(out, g.events)
	return out
}

// Step maps one platform input frame onto the engine and ticks once.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.s.phase.Terminal() {
		g.ResetSession()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.togglePause()
	} else if d := directionFromInput(in); d != DirNone {
		g.SetIntendedDirection(d)
	}

	g.Tick(g.tickDuration())
	return core.StepResult{State: g.State()}
}

// togglePause pauses a running session, or resumes one that was already
// moving. A session waiting at spawn needs a direction to start.
func (g *Game) togglePause() {
	switch g.s.phase {
	case PhaseRunning:
		g.s.phase = PhasePaused
	case PhasePaused:
		if g.player.Dir != DirNone || g.player.Next != DirNone {
			g.s.phase = PhaseRunning
		}
	}
}

func directionFromInput(in core.InputFrame) Direction {
	switch {
	case in.Has(core.ActionUp):
		return DirUp
	case in.Has(core.ActionDown):
		return DirDown
	case in.Has(core.ActionLeft):
		return DirLeft
	case in.Has(core.ActionRight):
		return DirRight
	default:
		return DirNone
	}
}

func (g *Game) tickDuration() time.Duration {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.s.score,
		Lives:  g.s.lives,
		Ended:  g.s.phase.Terminal(),
		Won:    g.s.phase == PhaseWon,
		Paused: g.s.phase == PhasePaused,
	}
}
