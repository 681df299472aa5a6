package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sinland/internal/progress"
	"github.com/vovakirdan/sinland/internal/stages"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset the unlock counter",
	Long: `Print the unlock counter stored in the save file.

With --reset the counter goes back to 1 and only the first stage stays open.

Examples:
  sinland progress
  sinland progress --reset
  sinland progress --save ./other-save.txt`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset the counter to 1")
}

func runProgress(_ *cobra.Command, _ []string) {
	path := savePath()
	c, err := progress.Load(path)
	if err != nil {
		fail("%v", err)
	}

	if flagReset {
		c.Reset()
		if err := c.Save(); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Progress reset (%s)\n", path)
		return
	}

	fmt.Printf("Unlocked: %d of %d (%s)\n", c.Value(), progress.Max, path)

	reg := stages.Default()
	for _, st := range reg.List() {
		mark := " "
		if st.Index <= c.Value() {
			mark = "x"
		}
		fmt.Printf("  [%s] %s (%s)\n", mark, st.Title, st.ID)
	}
}
