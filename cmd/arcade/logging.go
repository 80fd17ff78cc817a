package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logFile *os.File

// interactive commands own the terminal, so they only log to --log-file.
var interactive = map[string]bool{
	"play": true,
	"menu": true,
}

// setupLogger builds the process logger from the global flags and installs
// it as the default.
func setupLogger(cmd *cobra.Command) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if interactive[cmd.Name()] {
		w = io.Discard
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "arcade",
	})
	log.SetDefault(logger)
	return nil
}

func closeLogFile() {
	if logFile != nil {
		//nolint:errcheck // Nothing left to report to
		logFile.Close()
	}
}
