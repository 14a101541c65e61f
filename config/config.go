package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhubert/worklog/paths"
)

// Config holds the application configuration
type Config struct {
	DevDir               string `json:"dev_dir"`                         // Root folder whose projects get scanned at checkout
	SessionsFile         string `json:"sessions_file"`                   // Where session history is persisted
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when checkout completes

	mu       sync.RWMutex
	filePath string
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := cfg.ensureDefaults(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Fill defaults for fields older configs may not have.
	// This must happen before Validate() since Validate() only reads.
	if err := cfg.ensureDefaults(); err != nil {
		return nil, err
	}

	// Validate loaded config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDefaults fills any unset fields with their default values.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from Load() before the Config
// is shared across goroutines). This is safe because Load() is called once
// at application startup before any concurrent access is possible.
func (c *Config) ensureDefaults() error {
	if c.DevDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.DevDir = filepath.Join(home, "dev")
	}
	if c.SessionsFile == "" {
		sessionsFile, err := paths.SessionsFilePath()
		if err != nil {
			return err
		}
		c.SessionsFile = sessionsFile
	}
	return nil
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureDefaults() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.DevDir == "" {
		return fmt.Errorf("dev_dir is empty")
	}
	if !filepath.IsAbs(c.DevDir) {
		return fmt.Errorf("dev_dir must be absolute, got %q", c.DevDir)
	}
	if c.SessionsFile == "" {
		return fmt.Errorf("sessions_file is empty")
	}
	if !filepath.IsAbs(c.SessionsFile) {
		return fmt.Errorf("sessions_file must be absolute, got %q", c.SessionsFile)
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// SetFilePath sets the config file path (for testing).
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetDevDir returns the root folder whose projects get scanned
func (c *Config) GetDevDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DevDir
}

// SetDevDir sets the root folder whose projects get scanned.
// The path is resolved to an absolute path before storing.
func (c *Config) SetDevDir(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	c.DevDir = absPath
}

// GetSessionsFile returns the path where session history is persisted
func (c *Config) GetSessionsFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SessionsFile
}

// SetSessionsFile sets the path where session history is persisted
func (c *Config) SetSessionsFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	c.SessionsFile = absPath
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}
