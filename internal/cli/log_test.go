package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("wrote template", "composites", 4)

	out := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(out) {
		t.Errorf("timestamp should use HH:MM:SS.ms, got %q", out)
	}
	if !strings.Contains(out, "composites=4") {
		t.Errorf("output should carry key/value pairs, got %q", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool
	}{
		{"info hides debug", LogInfo, false},
		{"debug shows debug", LogDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, tt.level).Debug("rendered layer", "layer", "TOP_COPPER")
			if got := buf.Len() > 0; got != tt.debug {
				t.Errorf("debug output = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	time.Sleep(5 * time.Millisecond)
	prog.done("Built template")

	if !regexp.MustCompile(`Built template \(\d+ms\)`).MatchString(buf.String()) {
		t.Errorf("progress.done() = %q, want elapsed milliseconds", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if l := loggerFromContext(context.Background()); l != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)
	if l := loggerFromContext(withLogger(context.Background(), custom)); l != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
