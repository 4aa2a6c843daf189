package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileBackend keeps all keys in one JSON document on disk
type FileBackend struct {
	path   string
	logger *zap.Logger
}

// NewFileBackend creates a new FileBackend
func NewFileBackend(path string, logger *zap.Logger) *FileBackend {
	return &FileBackend{
		path:   path,
		logger: logger,
	}
}

// Read loads the document. A missing file is an empty store; a corrupt one is
// moved aside to <path>.corrupt and reported.
func (b *FileBackend) Read(ctx context.Context) (map[string][]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Created on first save
			b.logger.Debug("State file not found, starting empty", zap.String("path", b.path))
			return map[string][]byte{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		backupPath := b.path + ".corrupt"
		_ = os.Rename(b.path, backupPath)
		b.logger.Error("Corrupt state file backed up",
			zap.String("path", b.path),
			zap.String("backup", backupPath),
			zap.Error(err))
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", b.path, backupPath, err)
	}

	values := make(map[string][]byte, len(doc))
	for k, v := range doc {
		values[k] = v
	}
	return values, nil
}

// Write replaces the document atomically: temp file, then rename
func (b *FileBackend) Write(ctx context.Context, values map[string][]byte) error {
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	doc := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		doc[k] = v
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Close is a no-op
func (b *FileBackend) Close() error {
	return nil
}
