package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/replay"
	"github.com/vovakirdan/mazechase/internal/storage"
)

const maxReplays = 100 // Max replays to list

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Verify, k.Delete, k.Quit}}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowser is the Bubble Tea model listing stored runs of one game.
type ReplayBrowser struct {
	gameID   string
	store    *storage.Store
	replays  []storage.ReplayRecord
	stats    *storage.ReplayStats
	status   string
	table    table.Model
	help     help.Model
	keys     ReplayKeyMap
	width    int
	height   int
	quitting bool
}

// NewReplayBrowser creates a browser over the replays of gameID.
func NewReplayBrowser(store *storage.Store, gameID string, width, height int) ReplayBrowser {
	m := ReplayBrowser{
		gameID: gameID,
		store:  store,
		keys:   DefaultReplayKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplayBrowser) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Score", Width: 7},
		{Title: "Outcome", Width: 10},
		{Title: "Time", Width: 7},
		{Title: "Level", Width: 7},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the listing and the stats header.
func (m *ReplayBrowser) load() {
	m.replays, m.stats = nil, nil
	if m.store != nil {
		if replays, err := m.store.RecentReplays(m.gameID, maxReplays); err == nil {
			m.replays = replays
		} else {
			m.status = err.Error()
		}
		if stats, err := m.store.Stats(m.gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current replays.
func (m *ReplayBrowser) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		level := r.Difficulty
		if level == "" {
			level = "-"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			fmt.Sprintf("%d", r.Score),
			r.Outcome,
			formatDuration(r.Steps, r.TickRate),
			level,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatDuration renders a step count as m:ss at the recorded tick rate.
func formatDuration(steps uint64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := time.Duration(steps) * time.Second / time.Duration(tickRate)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// selected returns the replay under the cursor.
func (m ReplayBrowser) selected() (storage.ReplayRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplayRecord{}, false
	}
	return m.replays[i], true
}

// verifySelected re-simulates the selected replay and reports the result.
func (m *ReplayBrowser) verifySelected() {
	rec, ok := m.selected()
	if !ok {
		return
	}
	r, err := replay.Load(m.store, rec.ID)
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", shortID(rec.ID), err)
		return
	}
	res, err := replay.Verify(r)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("%s: %v", shortID(rec.ID), err)
	case res.Matches(r):
		m.status = fmt.Sprintf("%s: verified, score %d (%s)", shortID(rec.ID), res.Score, res.Outcome)
	default:
		m.status = fmt.Sprintf("%s: MISMATCH, recorded %d (%s), replayed %d (%s)",
			shortID(rec.ID), r.Score, r.Outcome, res.Score, res.Outcome)
	}
}

// deleteSelected removes the selected replay.
func (m *ReplayBrowser) deleteSelected() {
	rec, ok := m.selected()
	if !ok {
		return
	}
	if err := m.store.DeleteReplay(rec.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s: deleted", shortID(rec.ID))
	m.load()
}

// Init initializes the browser.
func (m ReplayBrowser) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m ReplayBrowser) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("REPLAYS - "+strings.ToUpper(registry.Title(m.gameID)), m.width)))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Runs > 0 {
		summary := fmt.Sprintf("%d runs  %d won", m.stats.Runs, m.stats.Wins)
		b.WriteString(helpStyle.Render(centerText(summary, m.width)))
	}
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No replays recorded yet.\nFinish a run to record one!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunReplayBrowser runs the replay browser until the user quits.
func RunReplayBrowser(store *storage.Store, gameID string, width, height int) error {
	p := tea.NewProgram(
		NewReplayBrowser(store, gameID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
