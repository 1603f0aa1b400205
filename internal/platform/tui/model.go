package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/chase"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/replay"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// eventSource is implemented by games that report per-tick events.
type eventSource interface {
	Events() []chase.Event
}

// configReporter is implemented by games that fall back to a default config.
type configReporter interface {
	ConfigErr() error
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	recorder   *replay.Recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	saved      bool // replay stored for the current run
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	cfg = cfg.WithDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
}

// gameHeight leaves one row for the help line.
func gameHeight(h int) int {
	return max(h-1, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Start resets the game and begins recording. Call it once before the
// program runs; Bubble Tea's value receivers would drop state set in Init.
func (m *Model) Start() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.warnConfig()
	m.beginRecording()
	m.logger.Debug("session started", "game", m.game.ID(), "seed", m.config.Seed)
}

// warnConfig logs a config the game rejected in favor of its default.
func (m *Model) warnConfig() {
	if cr, ok := m.game.(configReporter); ok {
		if err := cr.ConfigErr(); err != nil {
			m.logger.Warn("config rejected, playing with defaults", "error", err)
		}
	}
}

func (m *Model) beginRecording() {
	m.saved = false
	m.recorder = nil
	if m.store == nil {
		return
	}
	if rg, ok := m.game.(replay.Recordable); ok {
		m.recorder = replay.NewRecorder(rg, m.config)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// A restart is a new run with a fresh seed and a fresh recording.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Ended {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.warnConfig()
		m.beginRecording()
		m.inputFrame.Clear()
		m.logger.Debug("session restarted", "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	if m.recorder != nil && !m.saved {
		m.recorder.Record(m.inputFrame)
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logEvents()

	if m.gameState.Ended {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// logEvents writes the last tick's notable events at debug level.
func (m *Model) logEvents() {
	src, ok := m.game.(eventSource)
	if !ok {
		return
	}
	for _, e := range src.Events() {
		if e.Kind == chase.EventPellet {
			continue
		}
		m.logger.Debug(e.Kind.String(),
			"tick", e.Tick,
			"points", e.Points,
			"ghost", e.GhostID,
			"score", m.gameState.Score,
			"lives", m.gameState.Lives,
		)
	}
}

// finishRun stores the replay of the current run once. Runs quit before
// any input are not worth keeping.
func (m *Model) finishRun() {
	if m.saved || m.recorder == nil || m.store == nil {
		return
	}
	m.saved = true

	r := m.recorder.Finish(m.gameState)
	if len(r.Frames) == 0 {
		return
	}
	if err := replay.Save(m.store, r); err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", r.ID, "score", r.Score, "outcome", r.Outcome, "steps", r.Steps)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)
	model.Start()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
