// Package replay records the inputs of a run and re-simulates them headlessly.
//
// A replay holds everything the engine consumes: the seed, the effective
// config and the input frame of every step that had one. Re-running those
// inputs must reproduce the recorded score and outcome exactly.
package replay

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/registry"
)

// Outcome is how a recorded run ended.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeGameOver  Outcome = "game_over"
	OutcomeAbandoned Outcome = "abandoned" // player quit mid-run
)

// OutcomeOf classifies a game state.
func OutcomeOf(st core.GameState) Outcome {
	switch {
	case st.Won:
		return OutcomeWon
	case st.Ended:
		return OutcomeGameOver
	default:
		return OutcomeAbandoned
	}
}

// Frame is the input of one step. Steps without input are not stored.
type Frame struct {
	Step    uint64        `msgpack:"s"`
	Actions []core.Action `msgpack:"a"`
}

// Replay is a complete recorded run.
type Replay struct {
	ID          uuid.UUID
	GameID      string
	Seed        int64
	TickRate    int
	Difficulty  string
	Fingerprint string
	Config      config.ChaseConfig
	Frames      []Frame
	Steps       uint64
	Score       int
	Outcome     Outcome
	CreatedAt   time.Time
}

// Recordable is a game whose rules can be stored next to its inputs.
type Recordable interface {
	registry.Game
	Config() config.ChaseConfig
	Preset() config.DifficultyPreset
}

// Recorder captures the input frames fed to one session.
// It must see every frame passed to Step, in order.
type Recorder struct {
	r Replay
}

// NewRecorder starts a recording for a game that was just reset with runtime.
func NewRecorder(game Recordable, runtime core.RuntimeConfig) *Recorder {
	cfg := game.Config()
	return &Recorder{r: Replay{
		ID:          uuid.New(),
		GameID:      game.ID(),
		Seed:        runtime.Seed,
		TickRate:    runtime.TickRate,
		Difficulty:  string(game.Preset()),
		Fingerprint: config.Fingerprint(cfg),
		Config:      cfg,
	}}
}

// Record notes the frame passed to the next Step.
func (rec *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		rec.r.Frames = append(rec.r.Frames, Frame{Step: rec.r.Steps, Actions: in.List()})
	}
	rec.r.Steps++
}

// Steps returns how many frames have been recorded.
func (rec *Recorder) Steps() uint64 {
	return rec.r.Steps
}

// ID returns the replay ID.
func (rec *Recorder) ID() uuid.UUID {
	return rec.r.ID
}

// Finish seals the recording with the final state.
func (rec *Recorder) Finish(st core.GameState) Replay {
	r := rec.r
	r.Frames = append([]Frame(nil), rec.r.Frames...)
	r.Score = st.Score
	r.Outcome = OutcomeOf(st)
	r.CreatedAt = time.Now()
	return r
}
