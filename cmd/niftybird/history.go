package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/niftybird/internal/dialogue"
	"github.com/vovakirdan/niftybird/internal/platform/tui"
	"github.com/vovakirdan/niftybird/internal/storage"
)

var flagPrint string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived conversations",
	Long: `Browse the conversations archived in the --db database.

Use --print to write one session's transcript to stdout instead.

Examples:
  niftybird history
  niftybird history --print alice-1712345678`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagPrint, "print", "", "Print the transcript of this session ID and exit")
}

func runHistory(_ *cobra.Command, _ []string) {
	if flagDBPath == "" {
		fail("no archive configured, set --db")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening chat archive: %v", err)
	}
	defer store.Close()

	if flagPrint != "" {
		printTranscript(store, flagPrint)
		return
	}

	width, height := terminalSize()
	if err := tui.RunHistory(store, width, height); err != nil {
		store.Close()
		fail("running history: %v", err)
	}
}

// printTranscript writes one session as plain "Sender: text" lines.
func printTranscript(store *storage.Store, id string) {
	sum, err := store.Session(id)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if sum == nil {
		store.Close()
		fail("unknown session %q", id)
	}

	entries, err := store.Transcript(id)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("Session %s (%s), %d messages\n\n", sum.ID, sum.Origin, sum.Entries)
	for _, e := range entries {
		fmt.Printf("%s: %s\n", e.Sender, dialogue.PlainText(e.Text))
	}
}
