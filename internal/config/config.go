// Package config provides configuration management for canvasctl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/aiscreen-io/canvasctl/internal/constants"
)

// DeleteStyle selects how template deletion is sent. Some backend
// revisions expect the id in the URL path, others in a JSON body.
type DeleteStyle string

const (
	// DeleteByPath - DELETE /api/v1/canvas_templates/{id}
	DeleteByPath DeleteStyle = "path"

	// DeleteByBody - DELETE /api/v1/canvas_templates with {"id": ...} body
	DeleteByBody DeleteStyle = "body"
)

// UpdateStyle selects how template updates are sent. Conformant backends
// accept PUT; others only accept a POST with a method-override field.
type UpdateStyle string

const (
	// UpdateByPut - native PUT /api/v1/canvas_templates/{id}
	UpdateByPut UpdateStyle = "put"

	// UpdateByOverride - POST /api/v1/canvas_templates/{id} with _method=PUT
	UpdateByOverride UpdateStyle = "override"
)

// Config holds the backend connection settings and per-backend-revision
// contract knobs.
//
// Config file location: ~/.config/canvasctl/config
//
// INI format:
//
//	[api]
//	base_url = https://dev-api.aiscreen.io
//	delete_style = path
//	update_style = put
type Config struct {
	// BaseURL of the canvas backend, without trailing slash.
	BaseURL string `ini:"base_url"`

	// DeleteStyle selects the delete request shape for this backend.
	DeleteStyle DeleteStyle `ini:"delete_style"`

	// UpdateStyle selects the update request shape for this backend.
	UpdateStyle UpdateStyle `ini:"update_style"`
}

// Validation errors
var (
	ErrMissingBaseURL     = errors.New("base_url is required")
	ErrInvalidDeleteStyle = errors.New(`delete_style must be "path" or "body"`)
	ErrInvalidUpdateStyle = errors.New(`update_style must be "put" or "override"`)
)

// New creates a Config with default values.
func New() *Config {
	return &Config{
		BaseURL:     constants.DefaultBaseURL,
		DeleteStyle: DeleteByPath,
		UpdateStyle: UpdateByPut,
	}
}

// Load reads configuration from an INI file. A missing file yields
// defaults without error; an invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	apiSection := iniFile.Section("api")
	cfg.BaseURL = apiSection.Key("base_url").MustString(cfg.BaseURL)
	cfg.DeleteStyle = DeleteStyle(apiSection.Key("delete_style").MustString(string(cfg.DeleteStyle)))
	cfg.UpdateStyle = UpdateStyle(apiSection.Key("update_style").MustString(string(cfg.UpdateStyle)))

	return cfg, nil
}

// Save writes the configuration to an INI file, creating parent
// directories as needed. Uses a temp file plus rename for atomicity.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()
	apiSection, err := iniFile.NewSection("api")
	if err != nil {
		return fmt.Errorf("failed to create api section: %w", err)
	}
	apiSection.Key("base_url").SetValue(cfg.BaseURL)
	apiSection.Key("delete_style").SetValue(string(cfg.DeleteStyle))
	apiSection.Key("update_style").SetValue(string(cfg.UpdateStyle))

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks the configuration for usability.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	switch cfg.DeleteStyle {
	case DeleteByPath, DeleteByBody:
	default:
		return ErrInvalidDeleteStyle
	}
	switch cfg.UpdateStyle {
	case UpdateByPut, UpdateByOverride:
	default:
		return ErrInvalidUpdateStyle
	}
	return nil
}

// ResolveBaseURL returns the effective base URL by checking sources in
// priority order:
//
//  1. Provided flagURL (e.g. from --api-url)
//  2. CANVAS_API_BASE_URL environment variable
//  3. The loaded config file value
//  4. Built-in default
func (cfg *Config) ResolveBaseURL(flagURL string) string {
	if flagURL != "" {
		return strings.TrimSuffix(flagURL, "/")
	}
	if envURL := os.Getenv(constants.BaseURLEnvVar); envURL != "" {
		return strings.TrimSuffix(envURL, "/")
	}
	if cfg.BaseURL != "" {
		return strings.TrimSuffix(cfg.BaseURL, "/")
	}
	return constants.DefaultBaseURL
}
