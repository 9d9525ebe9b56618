package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/niftybird/internal/platform/window"
)

var (
	flagZoom   int
	flagVolume float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play the game in a desktop window",
	Long: `Open the game in a desktop window with sound.

Controls:
  Space/Click/Tap  - Start, flap, restart after game over
  Esc              - Close the window

Examples:
  niftybird window
  niftybird window --zoom 1 --volume 0`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagZoom, "zoom", 2, "Window pixels per game pixel")
	windowCmd.Flags().Float64Var(&flagVolume, "volume", 0.3, "Sound volume from 0 (mute) to 1")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("niftybird-window", os.Stderr)
	defer closeLog()

	err := window.Run(window.Options{
		Game:     loadGameConfig(),
		Seed:     flagSeed,
		TickRate: flagFPS,
		Zoom:     flagZoom,
		Volume:   min(max(flagVolume, 0), 1),
		Logger:   logger,
	})
	if err != nil {
		fail("running window: %v", err)
	}
}
