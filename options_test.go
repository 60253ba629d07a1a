package regcompat

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := RegisterVersion(Registration{
		Package: Package{Name: "Example"},
		Version: "0.1.0",
		Compat:  map[string]string{"DepA": "0.1"},
	}, WithLogger(logger))
	if err != nil {
		t.Fatalf("RegisterVersion() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "registered version") {
		t.Errorf("logger output missing registration record: %q", buf.String())
	}
}

func TestSilentByDefault(t *testing.T) {
	cfg, err := newConfig()
	if err != nil {
		t.Fatalf("newConfig() unexpected error: %v", err)
	}
	// Must not panic and must report disabled at every level.
	l := cfg.log()
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}
