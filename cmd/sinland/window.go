package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/platform/gui"
	"github.com/vovakirdan/sinland/internal/scene"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Play Sin Land in a 960x640 window.

Controls:
  Arrows/WASD  - Move, navigate menus
  Shift        - Run
  Space/Up/W   - Jump
  Enter/Click  - Select
  Esc/B        - Back to title
  Q            - Quit

Examples:
  sinland window
  sinland window --stage room --mute`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	addPlayFlags(windowCmd)
}

func runWindow(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	sess, err := openSession(logger)
	if err != nil {
		fail("%v", err)
	}
	sess.runtime.ScreenW = core.WorldW
	sess.runtime.ScreenH = core.WorldH

	ctrl, err := sess.controller()
	if err != nil {
		sess.close()
		if errors.Is(err, scene.ErrLocked) {
			fail("%v (run 'sinland progress' to see what is unlocked)", err)
		}
		fail("%v", err)
	}

	runErr := gui.Run(ctrl, sess.runtime, sess.reloads())
	sess.close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
