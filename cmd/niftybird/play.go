package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/niftybird/internal/platform/tui"
	"github.com/vovakirdan/niftybird/internal/storage"
)

var flagNoChat bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game with the chat assistant beside it",
	Long: `Start the game in the terminal with the chat panel on the right.

Controls:
  Space/Click  - Start, flap, restart after game over
  Tab          - Move focus between the game and the chat
  Enter        - Send a chat message
  Ctrl+R       - Retype the last bot reply
  Ctrl+Y       - Copy the conversation
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression (default)

Examples:
  niftybird play
  niftybird play --difficulty hard
  niftybird play --no-chat
  niftybird play --config ./my-game.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the chat assistant",
	Long: `Open the chat assistant without the game.

Type /mode to switch between STRICT and SMART matching.

Examples:
  niftybird chat
  niftybird chat --chat-config ./vocab.yaml`,
	Args: cobra.NoArgs,
	Run:  runChat,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoChat, "no-chat", false, "Hide the chat panel")
}

func runPlay(_ *cobra.Command, _ []string) {
	runArcade(true, !flagNoChat)
}

func runChat(_ *cobra.Command, _ []string) {
	runArcade(false, true)
}

// runArcade runs the terminal arcade with the requested panes.
func runArcade(showGame, showChat bool) {
	width, height := terminalSize()

	logger, closeLog := newLogger("niftybird", nil)
	defer closeLog()

	opts := tui.Options{
		Game:      loadGameConfig(),
		Chat:      loadChatConfig(),
		TickRate:  flagFPS,
		Seed:      flagSeed,
		ShowGame:  showGame,
		ShowChat:  showChat,
		Width:     width,
		Height:    height,
		Logger:    logger,
		SessionID: fmt.Sprintf("local-%d", time.Now().UnixNano()),
		Origin:    "tui",
	}

	var store *storage.Store
	if showChat && flagDBPath != "" {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open chat archive: %v\n", err)
			// Continue without storage
		} else {
			store = s
			opts.Archive = store
		}
	}

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running arcade: %v", runErr)
	}
}
