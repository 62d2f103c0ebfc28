package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWithConfig(t *testing.T) {
	testCases := []struct {
		level       log.Level
		logged      bool
		description string
	}{
		{log.DebugLevel, true, "debug level writes debug lines"},
		{log.InfoLevel, false, "info level drops debug lines"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithConfig(&buf, "strokes", tc.level, false, false, log.TextFormatter)
			l.Debug("resolved", "code", "ui")
			if got := strings.Contains(buf.String(), "resolved"); got != tc.logged {
				t.Errorf("logged = %v, output %q", got, buf.String())
			}
			if tc.logged && !strings.Contains(buf.String(), "strokes") {
				t.Errorf("prefix missing from %q", buf.String())
			}
		})
	}
}

func TestSetup(t *testing.T) {
	defer log.SetDefault(log.New(os.Stderr))
	Setup(true)
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("debug setup level = %v", log.GetLevel())
	}
	Setup(false)
	if log.GetLevel() != log.InfoLevel {
		t.Errorf("default setup level = %v", log.GetLevel())
	}
	Quiet()
	if log.GetLevel() != log.ErrorLevel {
		t.Errorf("quiet level = %v", log.GetLevel())
	}
}
