package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRotatingLoggerWritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	defer rl.Close()

	if _, err := rl.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}
	if _, err := rl.Write([]byte("second line\n")); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}

	expected := filepath.Join(dir, "omim-api-"+weekKey(time.Now())+".log")
	raw, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("Expected weekly log file at %s: %v", expected, err)
	}
	if !strings.Contains(string(raw), "first line") || !strings.Contains(string(raw), "second line") {
		t.Errorf("Log file missing written lines: %q", string(raw))
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 1)

	oldLog := filepath.Join(dir, "omim-api-2020-W01.log")
	if err := os.WriteFile(oldLog, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to create old log: %v", err)
	}
	past := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(oldLog, past, past); err != nil {
		t.Fatalf("Failed to age old log: %v", err)
	}

	freshLog := filepath.Join(dir, "omim-api-"+weekKey(time.Now())+".log")
	if err := os.WriteFile(freshLog, []byte("fresh"), 0644); err != nil {
		t.Fatalf("Failed to create fresh log: %v", err)
	}

	unrelated := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0644); err != nil {
		t.Fatalf("Failed to create unrelated file: %v", err)
	}
	if err := os.Chtimes(unrelated, past, past); err != nil {
		t.Fatalf("Failed to age unrelated file: %v", err)
	}

	deleted, err := rl.CleanupOldLogs()
	if err != nil {
		t.Fatalf("Expected cleanup to succeed, got %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted file, got %d", deleted)
	}

	if _, err := os.Stat(oldLog); !os.IsNotExist(err) {
		t.Error("Old log file should be removed")
	}
	if _, err := os.Stat(freshLog); err != nil {
		t.Error("Fresh log file should survive cleanup")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("Unrelated files must never be removed")
	}
}

func TestSetupLoggerWritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	logger := SetupLogger(dir, 4)
	logger.Info("Disease database built", "entries", 42)

	logPath := filepath.Join(dir, "omim-api-"+weekKey(time.Now())+".log")
	file, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatal("Expected at least one log line")
	}

	var record map[string]any
	if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
		t.Fatalf("Log file line is not JSON: %v", err)
	}
	if record["msg"] != "Disease database built" {
		t.Errorf("Unexpected log message %v", record["msg"])
	}
	if record["entries"] != float64(42) {
		t.Errorf("Expected entries attribute, got %v", record["entries"])
	}
}

func TestWeekKeyFormat(t *testing.T) {
	key := weekKey(time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC))
	if key != "2026-W02" {
		t.Errorf("Expected 2026-W02, got %q", key)
	}
}
