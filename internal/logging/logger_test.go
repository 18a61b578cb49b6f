package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "outreach.log")

	logger, err := New(path, "work", Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("companies loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "companies loaded" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["profile"] != "work" {
		t.Errorf("profile = %v, want work", entry["profile"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("missing ts field")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.log")

	logger, err := New(path, "main", Options{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("warn entry missing")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "main", Options{Level: "loud"}); err == nil {
		t.Error("New() expected error for unknown level")
	}
}
