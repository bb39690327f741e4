package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// DefaultSource is the published books.json of the epub collection
const DefaultSource = "https://cfopuser.github.io/epub-Jewish-books/data/books.json"

// Config represents the application configuration
type Config struct {
	Version     int             `toml:"version"`
	Source      string          `toml:"source" env:"EPUBSHELF_SOURCE"`
	RenderDelay Duration        `toml:"render_delay" env:"EPUBSHELF_RENDER_DELAY"`
	DownloadDir string          `toml:"download_dir" env:"EPUBSHELF_DOWNLOAD_DIR"`
	UISettings  UISettings      `toml:"ui"`
	Server      ServerSettings  `toml:"server"`
	Generator   GeneratorConfig `toml:"generator"`
}

// UISettings represents terminal UI configuration
type UISettings struct {
	ShowPaths bool `toml:"show_paths"`
}

// ServerSettings configures the HTTP surface
type ServerSettings struct {
	Addr      string `toml:"addr" env:"EPUBSHELF_ADDR"`
	AboutFile string `toml:"about_file"`
}

// GeneratorConfig configures the books.json generator
type GeneratorConfig struct {
	RepoUser    string   `toml:"repo_user"`
	RepoName    string   `toml:"repo_name"`
	Branch      string   `toml:"branch"`
	Output      string   `toml:"output"`
	Directories []string `toml:"directories"`
}

// Duration is a time.Duration written as a string ("300ms") in TOML and env
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if parsed < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", text)
	}
	*d = Duration(parsed)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Path() string
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the user config file
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "epubshelf", "config.toml"),
	}
}

// NewConfigServiceForPath creates a config service bound to path
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when
// the file does not exist. Environment overrides are applied last.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing fields
// keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version %d", cfg.Version)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config fields from EPUBSHELF_* environment variables
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version:     1,
		Source:      DefaultSource,
		RenderDelay: Duration(300 * time.Millisecond),
		DownloadDir: filepath.Join(homeDir, "Downloads", "epubshelf"),
		Server: ServerSettings{
			Addr: ":8080",
		},
		Generator: GeneratorConfig{
			RepoUser: "cfopuser",
			RepoName: "epub-Jewish-books",
			Branch:   "main",
			Output:   "docs/data/books.json",
			Directories: []string{
				"daat", "kindle seforim", "orayta", "oyw",
				"sefaria", "torat emet old", "torat emet website", "תורת אמת",
			},
		},
	}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
