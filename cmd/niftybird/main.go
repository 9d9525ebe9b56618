// niftybird is a tap-to-fly bird game with a rule-based chat assistant,
// playable in the terminal, over SSH or in a desktop window.
//
// Usage:
//
//	niftybird play           - Game and chat side by side
//	niftybird chat           - Chat assistant only
//	niftybird ask <message>  - Print one assistant reply
//	niftybird window         - Game in a desktop window
//	niftybird serve          - Start SSH server for remote play
//	niftybird history        - Browse archived conversations
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Game config YAML
//	--chat-config <path> - Chat vocabulary YAML
//	--db <path>          - Transcript archive (default: ~/.niftybird/chat.db)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagChatConfig string
	flagDifficulty string
	flagDBPath     string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "niftybird",
	Short: "Nifty Bird - tap to fly, ask the bot for help",
	Long: `Nifty Bird is a Flappy Bird-style game with a small chat assistant
that answers questions about the site it lives on.

Available commands:
  play     - Game and chat side by side in the terminal
  chat     - Chat assistant only
  ask      - Print one assistant reply and exit
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  history  - Browse archived conversations

Examples:
  niftybird play
  niftybird play --difficulty hard
  niftybird ask "how do i play"
  niftybird serve --ssh :2222
  niftybird history`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagChatConfig, "chat-config", "", "Path to custom chat config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.niftybird/chat.db", "Path to transcript archive (empty disables it)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
