package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/replay"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded runs",
	Long: `Display the most recent recorded runs, newest first.

With --browse, opens an interactive list where runs can be verified
and deleted.

Examples:
  mazechase replays
  mazechase replays --limit 50
  mazechase replays --browse`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run and verify its outcome",
	Long: `Load a recorded run, replay its inputs headlessly from the recorded
seed and configuration, and compare the final score and outcome.

The id may be shortened to any unique prefix, as shown by 'mazechase replays'.
Exits with status 2 when the replayed outcome differs from the recording.

Examples:
  mazechase replay 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive replay browser")
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runReplays(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if flagBrowse {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunReplayBrowser(store, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	replays, err := store.RecentReplays(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recorded runs - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(replays) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mazechase' to record the first one!")
		return
	}

	fmt.Printf("  %-8s  %-8s  %-10s  %-7s  %-7s  %s\n", "ID", "Score", "Outcome", "Time", "Level", "Date")
	fmt.Printf("  %-8s  %-8s  %-10s  %-7s  %-7s  %s\n", "--", "-----", "-------", "----", "-----", "----")
	for _, r := range replays {
		level := r.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Printf("  %-8s  %-8d  %-10s  %-7s  %-7s  %s\n",
			shortID(r.ID), r.Score, r.Outcome, playTime(r.Steps, r.TickRate), level,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(gameID); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("%d runs, %d won\n", stats.Runs, stats.Wins)
	}
}

func runReplay(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	r, err := replay.Load(store, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrReplayNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'mazechase replays' to see recorded runs.")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := replay.Verify(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay %s\n", r.ID)
	fmt.Printf("  seed %d, %d ticks at %d fps, difficulty %q\n", r.Seed, r.Steps, r.TickRate, r.Difficulty)
	fmt.Printf("  recorded: score %-6d %s\n", r.Score, r.Outcome)
	fmt.Printf("  replayed: score %-6d %s\n", res.Score, res.Outcome)

	if !res.Matches(r) {
		fmt.Println("MISMATCH")
		store.Close()
		os.Exit(2)
	}
	fmt.Println("OK")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func playTime(steps uint64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := time.Duration(steps) * time.Second / time.Duration(tickRate)
	return d.Round(time.Second).String()
}
