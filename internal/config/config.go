// Package config manages the durable client state at ~/.incordes/config.json:
// the backend service endpoints and the persisted identity that lets the
// client skip re-login across restarts.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/incordes/incordes/internal/api"
)

// Default backend endpoints. Each can be overridden in the config file to
// point at a self-hosted deployment.
const (
	DefaultAuthURL     = "https://api.incordes.dev/auth"
	DefaultFriendsURL  = "https://api.incordes.dev/friends"
	DefaultServersURL  = "https://api.incordes.dev/servers"
	DefaultMessagesURL = "https://api.incordes.dev/messages"
)

// Config holds the application configuration.
type Config struct {
	Services api.ServiceURLs `json:"services"`

	// Identity is the persisted session identity, nil when logged out.
	// This is the only user data that survives a restart.
	Identity *api.Identity `json:"identity,omitempty"`

	NotificationsEnabled bool `json:"notifications_enabled"` // Desktop notifications for new messages

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".incordes"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Fill endpoints dropped from older config files before Validate reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig(path string) *Config {
	return &Config{
		Services: api.ServiceURLs{
			Auth:     DefaultAuthURL,
			Friends:  DefaultFriendsURL,
			Servers:  DefaultServersURL,
			Messages: DefaultMessagesURL,
		},
		NotificationsEnabled: true,
		filePath:             path,
	}
}

// ensureInitialized backfills missing service endpoints with the defaults.
// Not thread-safe; only called from Load before the config is shared.
func (c *Config) ensureInitialized() {
	if c.Services.Auth == "" {
		c.Services.Auth = DefaultAuthURL
	}
	if c.Services.Friends == "" {
		c.Services.Friends = DefaultFriendsURL
	}
	if c.Services.Servers == "" {
		c.Services.Servers = DefaultServersURL
	}
	if c.Services.Messages == "" {
		c.Services.Messages = DefaultMessagesURL
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Identity != nil {
		if c.Identity.ID == 0 {
			return fmt.Errorf("persisted identity has no id")
		}
		if c.Identity.IncordesID == "" {
			return fmt.Errorf("persisted identity %d has no incordes id", c.Identity.ID)
		}
	}
	return nil
}

// Save writes the config to disk atomically.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to a temp file then rename so a crash never leaves a torn config
	tmp := c.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, c.filePath)
}

// SetFilePath overrides the config file location. Primarily for tests.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetIdentity returns the persisted identity, or nil when logged out.
func (c *Config) GetIdentity() *api.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Identity == nil {
		return nil
	}
	id := *c.Identity
	return &id
}

// SetIdentity records the authenticated identity.
func (c *Config) SetIdentity(id api.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Identity = &id
}

// ClearIdentity removes the persisted identity (logout).
func (c *Config) ClearIdentity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Identity = nil
}

// GetServices returns the configured service endpoints.
func (c *Config) GetServices() api.ServiceURLs {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Services
}

// GetNotificationsEnabled reports whether desktop notifications are on.
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}
