package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sinland/internal/progress"
	"github.com/vovakirdan/sinland/internal/stages"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List all stages",
	Long:  `Shows every stage in play order and whether it is unlocked in the current save.`,
	Args:  cobra.NoArgs,
	Run:   runStages,
}

func runStages(_ *cobra.Command, _ []string) {
	list := stages.Default().List()
	if len(list) == 0 {
		fmt.Println("No stages available.")
		return
	}

	unlocked := progress.Min
	if c, err := progress.Load(savePath()); err == nil {
		unlocked = c.Value()
	}

	maxIDLen := 2 // "ID" header
	for _, st := range list {
		maxIDLen = max(maxIDLen, len(st.ID))
	}

	fmt.Println("Stages:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-8s  %s\n", "#", maxIDLen, "ID", "Title", "Status")
	fmt.Printf("  %-3s  %-*s  %-8s  %s\n", "-", maxIDLen, "--", "-----", "------")

	for _, st := range list {
		status := "locked"
		if st.Index <= unlocked {
			status = "open"
		}
		fmt.Printf("  %-3d  %-*s  %-8s  %s\n", st.Index, maxIDLen, st.ID, st.Title, status)
	}

	fmt.Println()
	fmt.Println("Run 'sinland play --stage <id>' to start in an open stage.")
}
