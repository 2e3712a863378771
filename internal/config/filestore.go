package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultStorePath = "~/.config/bing-wallpaper/settings.toml"

// DefaultStorePath returns the default location of the headless settings file
func DefaultStorePath() string {
	return defaultStorePath
}

// FileStore is a Preferences implementation persisted as a TOML file.
// Every setter writes the file; read errors degrade to an empty store.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// OpenFileStore loads the store at path, creating nothing until the first write
func OpenFileStore(path string) (*FileStore, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	fs := &FileStore{path: resolved, values: make(map[string]any)}
	fs.Reload()
	return fs, nil
}

// Path returns the resolved file path
func (fs *FileStore) Path() string {
	return fs.path
}

// Reload re-reads the file, keeping the current values if it cannot be parsed
func (fs *FileStore) Reload() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read settings file", "path", fs.path, "error", err)
		}
		return
	}

	values := make(map[string]any)
	if err := toml.Unmarshal(data, &values); err != nil {
		slog.Warn("failed to parse settings file", "path", fs.path, "error", err)
		return
	}

	fs.mu.Lock()
	fs.values = values
	fs.mu.Unlock()
}

// BoolWithFallback returns the stored bool or fallback
func (fs *FileStore) BoolWithFallback(key string, fallback bool) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if v, ok := fs.values[key].(bool); ok {
		return v
	}
	return fallback
}

// SetBool stores a bool
func (fs *FileStore) SetBool(key string, value bool) {
	fs.set(key, value)
}

// FloatWithFallback returns the stored float or fallback
func (fs *FileStore) FloatWithFallback(key string, fallback float64) float64 {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	switch v := fs.values[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return fallback
}

// SetFloat stores a float
func (fs *FileStore) SetFloat(key string, value float64) {
	fs.set(key, value)
}

// IntWithFallback returns the stored int or fallback
func (fs *FileStore) IntWithFallback(key string, fallback int) int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	switch v := fs.values[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// SetInt stores an int
func (fs *FileStore) SetInt(key string, value int) {
	fs.set(key, int64(value))
}

// StringWithFallback returns the stored string or fallback
func (fs *FileStore) StringWithFallback(key, fallback string) string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if v, ok := fs.values[key].(string); ok {
		return v
	}
	return fallback
}

// SetString stores a string
func (fs *FileStore) SetString(key string, value string) {
	fs.set(key, value)
}

// RemoveValue deletes a key
func (fs *FileStore) RemoveValue(key string) {
	fs.mu.Lock()
	delete(fs.values, key)
	err := fs.saveLocked()
	fs.mu.Unlock()
	if err != nil {
		slog.Error("failed to save settings", "path", fs.path, "error", err)
	}
}

func (fs *FileStore) set(key string, value any) {
	fs.mu.Lock()
	fs.values[key] = value
	err := fs.saveLocked()
	fs.mu.Unlock()
	if err != nil {
		slog.Error("failed to save settings", "path", fs.path, "key", key, "error", err)
	}
}

func (fs *FileStore) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := toml.Marshal(fs.values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ and returns an absolute path
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultStorePath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
