package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/chase"
	"github.com/vovakirdan/mazechase/internal/registry"
)

// ErrFingerprintMismatch means the stored config is not the one the run was
// recorded with.
var ErrFingerprintMismatch = errors.New("replay: config fingerprint mismatch")

// Result is the end state of a re-simulated run.
type Result struct {
	Score   int
	Outcome Outcome
	Steps   uint64
}

// Matches reports whether the re-simulation reproduced the recording.
func (res Result) Matches(r Replay) bool {
	return res.Score == r.Score && res.Outcome == r.Outcome && res.Steps == r.Steps
}

// Verify re-simulates r on a fresh engine bound to its recorded config.
func Verify(r Replay) (Result, error) {
	if fp := config.Fingerprint(r.Config); fp != r.Fingerprint {
		return Result{}, fmt.Errorf("%w: recorded %s, got %s", ErrFingerprintMismatch, r.Fingerprint, fp)
	}
	game, err := chase.NewWithConfig(r.Config)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	return Run(game, r), nil
}

// Run resets g with the recorded seed and feeds it every recorded step.
func Run(g registry.Game, r Replay) Result {
	g.Reset(core.RuntimeConfig{TickRate: r.TickRate, Seed: r.Seed}.WithDefaults())

	in := core.NewInputFrame()
	next := 0
	var st core.GameState
	for step := uint64(0); step < r.Steps; step++ {
		in.Clear()
		if next < len(r.Frames) && r.Frames[next].Step == step {
			for _, a := range r.Frames[next].Actions {
				in.Set(a)
			}
			next++
		}
		st = g.Step(in).State
	}
	if r.Steps == 0 {
		st = g.State()
	}

	return Result{Score: st.Score, Outcome: OutcomeOf(st), Steps: r.Steps}
}
