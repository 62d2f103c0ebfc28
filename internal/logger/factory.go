package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Setup replaces the package-level default logger. Debug mode adds caller
// information and lowers the level.
func Setup(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	log.SetDefault(NewWithConfig(os.Stderr, "", level, debug, true, log.TextFormatter))
}

// Quiet silences everything below errors, for front ends that own the
// terminal.
func Quiet() {
	log.SetDefault(NewWithConfig(os.Stderr, "", log.ErrorLevel, false, false, log.TextFormatter))
}
