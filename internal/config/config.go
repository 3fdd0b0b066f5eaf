// Package config loads and validates docgrinder's optional YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-docgrinder/internal/fileutil"
	"github.com/alnah/go-docgrinder/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrUnknownTheme    = errors.New("unknown highlight theme")
)

// Defaults for every field.
const (
	DefaultOutputDirName    = "dist"
	DefaultHighlightDirName = "highlight"
	DefaultTheme            = "monokai"
	DefaultSafeMode         = "unsafe"
	DefaultTimeout          = "2m"
	DefaultPageSize         = "letter"
	DefaultMargin           = 0.5
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// userConfigDirName is the directory under os.UserConfigDir searched for named configs.
const userConfigDirName = "docgrinder"

// Config holds all configuration for a docgrinder run.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Highlight HighlightConfig `yaml:"highlight"`
	Assets    AssetsConfig    `yaml:"assets"`
	Page      PageConfig      `yaml:"page"`
	SafeMode  string          `yaml:"safeMode"` // unsafe, safe, server, secure
	Timeout   string          `yaml:"timeout"`  // Go duration, e.g. "90s"
}

// OutputConfig defines where rendered documents go.
type OutputConfig struct {
	DirName string `yaml:"dirName"` // sibling of the input directory
}

// HighlightConfig defines syntax-highlighting assets and themes.
type HighlightConfig struct {
	DirName    string `yaml:"dirName"`    // created inside the input directory
	Bootstrap  bool   `yaml:"bootstrap"`  // extract the archive when DirName is absent
	Archive    string `yaml:"archive"`    // zip on disk; empty = bundled archive
	Theme      string `yaml:"theme"`      // web backend theme
	PrintTheme string `yaml:"printTheme"` // print backend theme; empty = Theme
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size   string  `yaml:"size"`   // letter, a4, legal
	Margin float64 `yaml:"margin"` // inches
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{DirName: DefaultOutputDirName},
		Highlight: HighlightConfig{
			DirName:   DefaultHighlightDirName,
			Bootstrap: true,
			Theme:     DefaultTheme,
		},
		Page:     PageConfig{Size: DefaultPageSize, Margin: DefaultMargin},
		SafeMode: DefaultSafeMode,
		Timeout:  DefaultTimeout,
	}
}

// EffectivePrintTheme returns the print theme, falling back to the web theme.
func (c *Config) EffectivePrintTheme() string {
	if c.Highlight.PrintTheme != "" {
		return c.Highlight.PrintTheme
	}
	return c.Highlight.Theme
}

// TimeoutDuration parses Timeout. Call Validate first.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks every field. Called by LoadConfig, and again by the CLI
// after flags have been merged in.
func (c *Config) Validate() error {
	if err := validateDirName("output.dirName", c.Output.DirName); err != nil {
		return err
	}
	if err := validateDirName("highlight.dirName", c.Highlight.DirName); err != nil {
		return err
	}
	if err := ValidateTheme(c.Highlight.Theme); err != nil {
		return fmt.Errorf("highlight.theme: %w", err)
	}
	if c.Highlight.PrintTheme != "" {
		if err := ValidateTheme(c.Highlight.PrintTheme); err != nil {
			return fmt.Errorf("highlight.printTheme: %w", err)
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
		}
	}

	switch strings.ToLower(c.Page.Size) {
	case "", "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return fmt.Errorf("%w: page.margin must be between %.2f and %.1f, got %.2f",
			ErrInvalidValue, MinMargin, MaxMargin, c.Page.Margin)
	}

	return nil
}

// validateDirName rejects names that would escape their parent directory.
func validateDirName(field, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %s %q must be a plain directory name", ErrInvalidValue, field, name)
	}
	return nil
}

// ValidateTheme reports ErrUnknownTheme when name is not a chroma style.
func ValidateTheme(name string) error {
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return nil
}

// Themes lists the available highlight themes, sorted.
func Themes() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfig loads configuration from a file path or config name.
// Values absent from the file keep their defaults.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory then ~/.config/docgrinder/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
