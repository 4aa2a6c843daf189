package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitFileLogger(t *testing.T) {
	dir := t.TempDir()

	logFile := filepath.Join(dir, "logs", "overtime.log")
	l, err := initFileLogger(logFile, "debug")
	if err != nil {
		t.Fatalf("initFileLogger() error = %v", err)
	}
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file = %q, want the hello entry", data)
	}
}

func TestInitFileLogger_UnusableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := initFileLogger(filepath.Join(blocker, "overtime.log"), "info")
	if err == nil {
		t.Fatal("initFileLogger() error = nil, want error for a file in place of the log directory")
	}
	if l != nil {
		t.Errorf("initFileLogger() logger = %v, want nil", l)
	}
}
