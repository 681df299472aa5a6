// sinland is a small platformer about five short, strange stages.
//
// Usage:
//
//	sinland                  - Play in the terminal (same as play)
//	sinland play             - Play in the terminal
//	sinland window           - Play in a desktop window
//	sinland serve            - Start SSH server for remote play
//	sinland stages           - List stages and what is unlocked
//	sinland records [stage]  - Show clear records
//	sinland progress         - Show or reset the unlock counter
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible puzzles
//	--save <path>     - Set save file (default: ~/.sinland/save.txt)
//	--db <path>       - Set records database (default: ~/.sinland/records.db)
//	--config <path>   - Load physics and stage tuning from YAML
//	--preset <name>   - Timing preset: relaxed, normal, strict
//	--debug           - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagSave   string
	flagDBPath string
	flagConfig string
	flagPreset string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sinland",
	Short: "Sin Land - a five stage puzzle platformer",
	Long: `Sin Land is a short platformer. Every stage hides its exit behind
a different trick: a hungry monkey, a heartbeat, a pencil, a traffic
light and a chair.

Available commands:
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  stages    - Show all stages
  records   - View clear records
  progress  - Show or reset the unlock counter

Examples:
  sinland
  sinland window --stage heartbeat
  sinland play --preset relaxed
  sinland serve --ssh :2222
  sinland records crosswalk`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSave, "save", "", "Path to the unlock counter file (default ~/.sinland/save.txt)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sinland/records.db", "Path to clear records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sinland.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Timing preset: relaxed, normal, strict")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(progressCmd)
}

// fail prints err and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
