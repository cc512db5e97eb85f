package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("Initial: width 5") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("Temperature 4.75") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("Temperature 4.75") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug line missing after SetLogLevel: %q", buf.String())
	}
}

func TestRunLoggerField(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.With("run", "5b1d0c9e").Info("Best: width 4 after 1200 iterations")
	if !strings.Contains(buf.String(), "run=5b1d0c9e") {
		t.Errorf("run field missing: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered best.svg")

	if !regexp.MustCompile(`Rendered best\.svg \([0-9.]+[mµn]?s\)`).MatchString(buf.String()) {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}
