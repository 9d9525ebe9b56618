package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/niftybird/internal/dialogue"
)

var flagMode string

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Print the assistant's reply to one message",
	Long: `Ask the chat assistant a single question and print its reply as
plain text. Useful for checking a vocabulary file.

Modes:
  strict - Misspelled known phrases are rejected (default)
  smart  - Misspelled known phrases are corrected

Examples:
  niftybird ask "hello"
  niftybird ask --mode smart "how do i plya"
  niftybird ask --debug "who is the owner"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&flagMode, "mode", "", "Matching mode: strict or smart (default from config)")
}

func runAsk(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger("niftybird-ask", os.Stderr)
	defer closeLog()

	policy := dialogue.NewPolicy(loadChatConfig())
	mode := policy.DefaultMode()
	if flagMode != "" {
		m, err := dialogue.ParseMode(flagMode)
		if err != nil {
			fail("%v", err)
		}
		mode = m
	}

	msg := strings.Join(args, " ")
	d := policy.Decide(msg, &mode)
	logger.Debug("decided",
		"source", d.Source,
		"match", d.Match,
		"corrected", d.Corrected,
		"mode", mode,
	)

	fmt.Println(dialogue.PlainText(d.Reply))
}
