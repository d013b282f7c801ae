package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the git-bp configuration.
type Config struct {
	// Backend selects the VCS backend: "git" or "go-git".
	Backend   string `toml:"backend" json:"backend"`
	GitBinary string `toml:"gitBinary" json:"gitBinary"`
	// Ref is the reference branch used when --ref is not given.
	Ref      string   `toml:"ref,omitempty" json:"ref,omitempty"`
	LogLevel string   `toml:"logLevel" json:"logLevel"`
	Color    string   `toml:"color" json:"color"`
	PickArgs []string `toml:"pickArgs" json:"pickArgs"`
	VimDir   string   `toml:"vimDir,omitempty" json:"vimDir,omitempty"`
	// Format is the default output format of the fix command.
	Format string `toml:"format" json:"format"`
}

// Accepted values for the enumerated keys.
var (
	Backends  = []string{"git", "go-git"}
	LogLevels = []string{"debug", "info", "warn", "error"}
	Colors    = []string{"auto", "always", "never"}
	Formats   = []string{"list", "json", "markdown"}
)

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Backend:   "git",
		GitBinary: "git",
		LogLevel:  "warn",
		Color:     "auto",
		PickArgs:  []string{"-x", "--signoff"},
		Format:    "list",
	}
}

// ConfigDir returns the platform-appropriate config directory for git-bp.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-bp"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "git-bp"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "git-bp"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "git-bp"), nil
	default:
		return filepath.Join(home, ".config", "git-bp"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the enumerated keys.
func (c Config) Validate() error {
	values := map[string]string{
		"backend":  c.Backend,
		"logLevel": c.LogLevel,
		"color":    c.Color,
		"format":   c.Format,
	}
	for _, key := range []string{"backend", "logLevel", "color", "format"} {
		if err := ValidateField(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateField checks value against the accepted values of key. Keys
// without a fixed set of values always pass.
func ValidateField(key, value string) error {
	allowed, ok := map[string][]string{
		"backend":  Backends,
		"logLevel": LogLevels,
		"color":    Colors,
		"format":   Formats,
	}[key]
	if !ok || slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}

func mergeFile(dst *Config, src Config) {
	if src.Backend != "" {
		dst.Backend = strings.ToLower(src.Backend)
	}
	if src.GitBinary != "" {
		dst.GitBinary = src.GitBinary
	}
	if src.Ref != "" {
		dst.Ref = src.Ref
	}
	if src.LogLevel != "" {
		dst.LogLevel = strings.ToLower(src.LogLevel)
	}
	if src.Color != "" {
		dst.Color = strings.ToLower(src.Color)
	}
	// An explicit empty list in the file means plain "git cherry-pick".
	if src.PickArgs != nil {
		dst.PickArgs = src.PickArgs
	}
	if src.VimDir != "" {
		dst.VimDir = src.VimDir
	}
	if src.Format != "" {
		dst.Format = strings.ToLower(src.Format)
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("GITBP_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("GITBP_GIT"); v != "" {
		cfg.GitBinary = v
	}
	if v := os.Getenv("GITBP_LOG"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GITBP_COLOR"); v != "" {
		cfg.Color = strings.ToLower(v)
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
// Enumerated values are lowercased; pickArgs takes a whitespace-separated list.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "backend":
		cfg.Backend = strings.ToLower(value)
	case "gitBinary":
		cfg.GitBinary = value
	case "ref":
		cfg.Ref = value
	case "logLevel":
		cfg.LogLevel = strings.ToLower(value)
	case "color":
		cfg.Color = strings.ToLower(value)
	case "pickArgs":
		cfg.PickArgs = strings.Fields(value)
	case "vimDir":
		cfg.VimDir = value
	case "format":
		cfg.Format = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
