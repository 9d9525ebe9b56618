package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/niftybird/internal/config"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadGameConfig loads the game config and applies --difficulty.
func loadGameConfig() config.GameConfig {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if err := config.ApplyGamePreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		fail("%v", err)
	}
	return cfg
}

// loadChatConfig loads the chat vocabulary.
func loadChatConfig() config.ChatConfig {
	cfg, err := config.LoadChat(flagChatConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// newLogger returns a logger writing to --log-file, or to fallback when no
// file is set. A nil fallback discards. The returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w, closeFn = f, func() { f.Close() }
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
