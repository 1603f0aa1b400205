package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/chase"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the current terminal.

Controls:
  Arrows/WASD/HJKL - Steer
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  ?                - Help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Ghosts start slow and speed up with your score
  normal - Ghosts start at 30% of their speed range
  hard   - Ghosts start at 70% of their speed range
  fixed  - No progression, ghosts keep the configured speed

Every finished run is recorded to the replay database.

Examples:
  mazechase play
  mazechase play --difficulty hard
  mazechase play --seed 42
  mazechase play --config ./my-maze.yaml --log ./chase.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug log of game events to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	// Surface config errors here rather than silently falling back in the game
	if _, err := config.LoadChase(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	chase.SetConfigPath(flagConfig)
	chase.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger, closeLog, err := openGameLog(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		stderr.Warn("could not open replay database, runs will not be recorded", "error", err)
		store = nil
	}

	runErr := tui.Run(game, store, logger, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openGameLog returns a debug logger writing to path, or a discarding
// logger when path is empty. The alt screen owns the terminal while playing.
func openGameLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          gameID,
	})
	return logger, func() { f.Close() }, nil
}
