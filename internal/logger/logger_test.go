package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, "warn", "json")

	l.Info("hidden")
	WithComponent("factory").Warn("shown", "word", "Q9Z")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d:\n%s", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatal(err)
	}
	if record["msg"] != "shown" || record["component"] != "factory" || record["word"] != "Q9Z" {
		t.Errorf("unexpected record %v", record)
	}
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, "debug", "text")
	l.Debug("generating nodes", "index", "words")

	if !strings.Contains(buf.String(), `msg="generating nodes" index=words`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, expected %v", in, got, want)
		}
	}

	if ValidLevel("loud") || !ValidLevel("warn") {
		t.Error("ValidLevel disagrees with parseLevel")
	}
	if ValidFormat("xml") || !ValidFormat("json") {
		t.Error("ValidFormat accepts the wrong formats")
	}
}
