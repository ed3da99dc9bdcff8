package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the name of the config file inside the user config directory
const FileName = "github-labelexim.json"

// Config represents the labelexim configuration
type Config struct {
	Token string `json:"token"`
}

// IOError reports a config file that could not be read, parsed or written
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s config file %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *IOError) Unwrap() error {
	return e.Err
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, FileName), nil
}

// LoadConfigFromPath loads configuration from a specific path.
// A missing file is an error; use LoadOrCreate to create it on first run.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &IOError{Op: "parse", Path: path, Err: err}
	}

	return &config, nil
}

// LoadOrCreate loads configuration from path, writing an empty configuration
// there first if the file does not exist yet.
func LoadOrCreate(path string) (*Config, error) {
	config, err := LoadConfigFromPath(path)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config = &Config{}
	if err := config.SaveToPath(path); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToPath saves configuration to a specific path
func (c *Config) SaveToPath(path string) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &IOError{Op: "create directory for", Path: path, Err: err}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	// The file holds an access token, so keep it private to the user
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// HasToken reports whether a token is stored
func (c *Config) HasToken() bool {
	return c.Token != ""
}
