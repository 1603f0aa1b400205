package replay

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// ErrCorrupt is returned for input logs that cannot belong to a valid run.
var ErrCorrupt = errors.New("replay: corrupt input log")

// EncodeFrames packs an input log with msgpack.
func EncodeFrames(frames []Frame) ([]byte, error) {
	data, err := msgpack.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("replay: encode frames: %w", err)
	}
	return data, nil
}

// DecodeFrames unpacks an input log written by EncodeFrames.
func DecodeFrames(data []byte) ([]Frame, error) {
	var frames []Frame
	if err := msgpack.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("replay: decode frames: %w", err)
	}
	return frames, nil
}

// checkFrames requires strictly increasing steps below total.
func checkFrames(frames []Frame, total uint64) error {
	for i, f := range frames {
		if f.Step >= total {
			return fmt.Errorf("%w: frame %d at step %d past end %d", ErrCorrupt, i, f.Step, total)
		}
		if i > 0 && f.Step <= frames[i-1].Step {
			return fmt.Errorf("%w: frame %d out of order", ErrCorrupt, i)
		}
	}
	return nil
}

// ToRecord flattens a replay for storage.
func ToRecord(r Replay) (storage.ReplayRecord, error) {
	cfg, err := yaml.Marshal(r.Config)
	if err != nil {
		return storage.ReplayRecord{}, fmt.Errorf("replay: encode config: %w", err)
	}
	inputs, err := EncodeFrames(r.Frames)
	if err != nil {
		return storage.ReplayRecord{}, err
	}

	return storage.ReplayRecord{
		ID:          r.ID.String(),
		GameID:      r.GameID,
		Seed:        r.Seed,
		TickRate:    r.TickRate,
		Difficulty:  r.Difficulty,
		Fingerprint: r.Fingerprint,
		Config:      cfg,
		Inputs:      inputs,
		Steps:       r.Steps,
		Score:       r.Score,
		Outcome:     string(r.Outcome),
		CreatedAt:   r.CreatedAt,
	}, nil
}

// FromRecord rebuilds a replay loaded from storage.
func FromRecord(rec storage.ReplayRecord) (Replay, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return Replay{}, fmt.Errorf("replay: bad id %q: %w", rec.ID, err)
	}
	cfg, err := config.ParseChase(rec.Config)
	if err != nil {
		return Replay{}, fmt.Errorf("replay: decode config: %w", err)
	}
	frames, err := DecodeFrames(rec.Inputs)
	if err != nil {
		return Replay{}, err
	}
	if err := checkFrames(frames, rec.Steps); err != nil {
		return Replay{}, err
	}

	return Replay{
		ID:          id,
		GameID:      rec.GameID,
		Seed:        rec.Seed,
		TickRate:    rec.TickRate,
		Difficulty:  rec.Difficulty,
		Fingerprint: rec.Fingerprint,
		Config:      cfg,
		Frames:      frames,
		Steps:       rec.Steps,
		Score:       rec.Score,
		Outcome:     Outcome(rec.Outcome),
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// Save stores a replay.
func Save(store *storage.Store, r Replay) error {
	rec, err := ToRecord(r)
	if err != nil {
		return err
	}
	return store.SaveReplay(rec)
}

// Load fetches and decodes a replay by full ID or unique prefix.
// Missing IDs wrap storage.ErrReplayNotFound.
func Load(store *storage.Store, id string) (Replay, error) {
	full, err := store.ResolveID(id)
	if err != nil {
		return Replay{}, err
	}
	rec, err := store.Replay(full)
	if err != nil {
		return Replay{}, err
	}
	return FromRecord(rec)
}
