package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sinland/internal/platform/tui"
	"github.com/vovakirdan/sinland/internal/scene"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play Sin Land in the terminal.

Controls:
  Arrows/WASD      - Move, navigate menus
  Shift+Arrows     - Run (terminals report Shift only with another key)
  Space/Up/W       - Jump
  Enter            - Select
  Esc/B            - Back to title
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot

Logs go to ~/.sinland/sinland.log while the game owns the terminal.

Examples:
  sinland play
  sinland play --stage pencil
  sinland play --config ./sinland.yaml --watch
  sinland play --mute --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) {
	out, err := logFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		out = nopCloser{}
	}
	defer out.Close()
	logger := newLogger(out)

	sess, err := openSession(logger)
	if err != nil {
		fail("%v", err)
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		sess.runtime.ScreenW = w
		sess.runtime.ScreenH = h
	}

	ctrl, err := sess.controller()
	if err != nil {
		sess.close()
		if errors.Is(err, scene.ErrLocked) {
			fail("%v (run 'sinland progress' to see what is unlocked)", err)
		}
		fail("%v", err)
	}

	logger.Info("terminal session started", "scene", ctrl.Current(), "unlocked", ctrl.Unlocked())
	runErr := tui.Run(ctrl, sess.runtime, sess.reloads())
	sess.close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// nopCloser discards log output when the log file cannot be opened.
type nopCloser struct{}

func (nopCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopCloser) Close() error                { return nil }
