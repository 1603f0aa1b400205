// mazechase is a terminal maze chase: collect every pellet, dodge the ghosts,
// and turn the tables on them with a power pellet.
//
// Usage:
//
//	mazechase [play]         - Play in the terminal (default)
//	mazechase serve          - Start SSH server for remote play
//	mazechase replays        - List or browse recorded runs
//	mazechase replay <id>    - Re-simulate a run and check its outcome
//	mazechase config         - Print the default configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/replays.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/mazechase/internal/games/chase"
)

const gameID = "chase"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

// stderr reports warnings that should not abort a command.
var stderr = log.NewWithOptions(os.Stderr, log.Options{Prefix: "mazechase"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - a pellet-munching chase in your terminal",
	Long: `Maze Chase is a terminal arcade game: steer through the maze, eat every
pellet and avoid the ghosts. Power pellets make the ghosts edible for a while.

Available commands:
  play     - Play (default when no command is given)
  serve    - Start SSH server for remote play
  replays  - List recorded runs
  replay   - Re-simulate a recorded run and verify its outcome
  config   - Print the default configuration

Examples:
  mazechase
  mazechase play --difficulty hard
  mazechase serve --ssh :2222
  mazechase replays --browse
  mazechase replay 3f2a9c1e`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/replays.db", "Path to replay database")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
