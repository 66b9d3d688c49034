package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docmcp/internal/logging"
	"docmcp/pkg/fileops"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "docmcp" // application name used for config directory

// ConfigPathEnv overrides the config file location.
const ConfigPathEnv = "DOCMCP_CONFIG"

// Supported transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultName             = "DocumentMCP"
	DefaultAddress          = "localhost:8080"
	DefaultSeedGlob         = "**/*"
	DefaultMaxDocumentBytes = 1 << 20
)

// Version is stamped at build time via ldflags.
var Version = "dev"

// Config holds the server configuration.
type Config struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"`
	Address   string `yaml:"address"`
	BaseURL   string `yaml:"base_url,omitempty"`
	LogLevel  string `yaml:"log_level"`

	// SeedDir replaces the built-in documents with the files below it.
	SeedDir          string `yaml:"seed_dir,omitempty"`
	SeedGlob         string `yaml:"seed_glob"`
	MaxDocumentBytes int64  `yaml:"max_document_bytes"`

	// RejectEmptySearch makes edit_doc refuse an empty old_string. When false
	// the empty string matches between every character.
	RejectEmptySearch bool `yaml:"reject_empty_search"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Name:              DefaultName,
		Version:           Version,
		Transport:         TransportStdio,
		Address:           DefaultAddress,
		LogLevel:          logging.DefaultLevel,
		SeedGlob:          DefaultSeedGlob,
		MaxDocumentBytes:  DefaultMaxDocumentBytes,
		RejectEmptySearch: true,
	}
}

// ConfigPath returns the config file path: $DOCMCP_CONFIG if set, otherwise
// config.yaml in the platform config directory.
func ConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return fileops.ExpandPath(p)
	}
	return filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
}

// Load reads the config from the standard location. A missing file is not an
// error: the defaults are returned.
func Load() (*Config, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logging.Debug("No config file, using defaults", "path", path)
		cfg := DefaultConfig()
		return &cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads config from a specific path. Fields missing from the file keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, fmt.Errorf("name cannot be empty"))
	}

	switch c.Transport {
	case TransportStdio:
	case TransportSSE, TransportHTTP:
		if strings.TrimSpace(c.Address) == "" {
			errs = append(errs, fmt.Errorf("address is required for %s transport", c.Transport))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported transport %q (want stdio, sse or http)", c.Transport))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if c.SeedGlob != "" && !doublestar.ValidatePattern(c.SeedGlob) {
		errs = append(errs, fmt.Errorf("invalid seed_glob %q", c.SeedGlob))
	}

	if c.MaxDocumentBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_document_bytes must be positive, got %d", c.MaxDocumentBytes))
	}

	return errors.Join(errs...)
}
