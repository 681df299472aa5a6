package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sinland/internal/platform/tui"
	"github.com/vovakirdan/sinland/internal/stages"
	"github.com/vovakirdan/sinland/internal/storage"
)

var flagBoard bool

var recordsCmd = &cobra.Command{
	Use:   "records [stage]",
	Short: "Show clear records",
	Long: `Display the fastest clears of a stage, or a summary of every stage.

With --board the records open in an interactive terminal board.

Examples:
  sinland records
  sinland records heartbeat
  sinland records --board`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagBoard, "board", false, "Browse records interactively")
}

func runRecords(_ *cobra.Command, args []string) {
	reg := stages.Default()

	stageID := ""
	if len(args) == 1 {
		stageID = args[0]
		if !reg.Exists(stageID) {
			fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", stageID)
			fmt.Fprintln(os.Stderr, "Run 'sinland stages' to see available stages.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening records database: %v", err)
	}
	defer store.Close()

	if flagBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRecords(store, reg.List(), stageID, width, height); err != nil {
			fail("running records board: %v", err)
		}
		return
	}

	if stageID == "" {
		printSummary(store)
		return
	}
	printStage(store, stageID)
}

func printStage(store *storage.Store, stageID string) {
	clears, err := store.BestClears(stageID, 10)
	if err != nil {
		fail("retrieving records: %v", err)
	}

	fmt.Printf("Clear Records - %s\n", stageID)
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sinland play --stage %s' to set the first time!\n", stageID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Time", "Respawns", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "----", "--------", "----")
	for i, c := range clears {
		fmt.Printf("  %-4d  %-10s  %-8d  %s\n",
			i+1, tui.FormatClearTime(c.Duration), c.Respawns, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.StageStats(stageID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %s  Average: %s  Clears: %d  Runs: %d\n",
			tui.FormatClearTime(st.Best), tui.FormatClearTime(st.Average), st.Clears, st.Runs)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllStageStats()
	if err != nil {
		fail("retrieving records: %v", err)
	}

	fmt.Println("Clear Records")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-10s  %-10s  %s\n", "Stage", "Clears", "Best", "Average", "Respawns")
	fmt.Printf("  %-10s  %-6s  %-10s  %-10s  %s\n", "-----", "------", "----", "-------", "--------")

	for _, info := range stages.Default().List() {
		st, ok := all[info.ID]
		if !ok {
			fmt.Printf("  %-10s  %-6d  %-10s  %-10s  %s\n", info.ID, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-10s  %-6d  %-10s  %-10s  %d\n", info.ID, st.Clears,
			tui.FormatClearTime(st.Best), tui.FormatClearTime(st.Average), st.Respawns)
	}
}
