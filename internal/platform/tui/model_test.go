package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/chase"
	"github.com/vovakirdan/mazechase/internal/replay"
	"github.com/vovakirdan/mazechase/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	game, err := chase.NewWithConfig(config.DefaultChaseConfig())
	if err != nil {
		t.Fatalf("NewWithConfig() failed: %v", err)
	}
	m := NewModel(game, store, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 7})
	m.Start()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestModelStepsGameOnTick(t *testing.T) {
	m := newTestModel(t, nil)

	if !m.gameState.Paused {
		t.Fatal("new session should start paused")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg{})

	if m.gameState.Paused {
		t.Error("direction key should start the run")
	}
	if !m.inputFrame.Empty() {
		t.Error("input frame should be cleared after a tick")
	}
	if m.recorder != nil {
		t.Error("no recorder expected without a store")
	}
}

func TestModelQuitSavesReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for range 30 {
		m = update(t, m, TickMsg{})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if !m.quitting {
		t.Fatal("q should quit")
	}

	recent, err := store.RecentReplays("chase", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("stored %d replays, want 1", len(recent))
	}

	r, err := replay.Load(store, recent[0].ID)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if r.Outcome != replay.OutcomeAbandoned {
		t.Errorf("Outcome = %q, want %q", r.Outcome, replay.OutcomeAbandoned)
	}
	if r.Steps != 30 {
		t.Errorf("Steps = %d, want 30", r.Steps)
	}

	res, err := replay.Verify(r)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !res.Matches(r) {
		t.Errorf("replayed %d/%s, recorded %d/%s", res.Score, res.Outcome, r.Score, r.Outcome)
	}
}

func TestModelQuitWithoutInputSavesNothing(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = update(t, m, TickMsg{})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	recent, _ := store.RecentReplays("chase", 10)
	if len(recent) != 0 {
		t.Errorf("stored %d replays for a run without input", len(recent))
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()

	if !strings.Contains(view, "Score") {
		t.Error("view should show the HUD")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should show the help line")
	}
}

func TestModelLogsRejectedConfig(t *testing.T) {
	chase.SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { chase.SetConfigPath("") })

	var buf bytes.Buffer
	m := NewModel(chase.New(), nil, log.New(&buf), core.RuntimeConfig{Seed: 3})
	m.Start()

	if !strings.Contains(buf.String(), "config rejected") {
		t.Errorf("log = %q, want a config warning", buf.String())
	}
	if !m.gameState.Paused || m.gameState.Lives != 3 {
		t.Errorf("state = %+v, want a fresh default session", m.gameState)
	}
}
