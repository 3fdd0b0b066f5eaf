package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults match the fixed layout
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Output.DirName != "dist" {
		t.Errorf("Output.DirName = %q, want dist", cfg.Output.DirName)
	}
	if cfg.Highlight.DirName != "highlight" {
		t.Errorf("Highlight.DirName = %q, want highlight", cfg.Highlight.DirName)
	}
	if !cfg.Highlight.Bootstrap {
		t.Error("Highlight.Bootstrap = false, want true")
	}
	if cfg.Highlight.Theme != "monokai" {
		t.Errorf("Highlight.Theme = %q, want monokai", cfg.Highlight.Theme)
	}
	if cfg.SafeMode != "unsafe" {
		t.Errorf("SafeMode = %q, want unsafe", cfg.SafeMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if got := cfg.TimeoutDuration(); got != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 2m", got)
	}
}

func TestEffectivePrintTheme(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.EffectivePrintTheme(); got != "monokai" {
		t.Errorf("EffectivePrintTheme() = %q, want fallback monokai", got)
	}
	cfg.Highlight.PrintTheme = "github"
	if got := cfg.EffectivePrintTheme(); got != "github" {
		t.Errorf("EffectivePrintTheme() = %q, want github", got)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field validation
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"output dir with separator", func(c *Config) { c.Output.DirName = "a/b" }, ErrInvalidValue},
		{"output dir parent", func(c *Config) { c.Output.DirName = ".." }, ErrInvalidValue},
		{"empty highlight dir", func(c *Config) { c.Highlight.DirName = "" }, ErrInvalidValue},
		{"unknown theme", func(c *Config) { c.Highlight.Theme = "nope" }, ErrUnknownTheme},
		{"unknown print theme", func(c *Config) { c.Highlight.PrintTheme = "nope" }, ErrUnknownTheme},
		{"known print theme", func(c *Config) { c.Highlight.PrintTheme = "github" }, nil},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, ErrInvalidValue},
		{"negative timeout", func(c *Config) { c.Timeout = "-1s" }, ErrInvalidValue},
		{"a4 page", func(c *Config) { c.Page.Size = "A4" }, nil},
		{"bad page size", func(c *Config) { c.Page.Size = "tabloid" }, ErrInvalidValue},
		{"margin too small", func(c *Config) { c.Page.Margin = 0.1 }, ErrInvalidValue},
		{"margin too large", func(c *Config) { c.Page.Margin = 4 }, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestThemes_IncludesBundledThemes(t *testing.T) {
	t.Parallel()

	themes := strings.Join(Themes(), ",")
	for _, want := range []string{"monokai", "github", "dracula"} {
		if !strings.Contains(themes, want) {
			t.Errorf("Themes() missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		p := write("partial.yaml", "highlight:\n  theme: dracula\n")
		cfg, err := LoadConfig(p)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Highlight.Theme != "dracula" {
			t.Errorf("Theme = %q, want dracula", cfg.Highlight.Theme)
		}
		if cfg.Output.DirName != "dist" {
			t.Errorf("Output.DirName = %q, want default dist", cfg.Output.DirName)
		}
		if !cfg.Highlight.Bootstrap {
			t.Error("Bootstrap default lost")
		}
	})

	t.Run("bootstrap disabled", func(t *testing.T) {
		t.Parallel()

		p := write("nobootstrap.yaml", "highlight:\n  bootstrap: false\nsafeMode: safe\n")
		cfg, err := LoadConfig(p)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Highlight.Bootstrap {
			t.Error("Bootstrap = true, want false")
		}
		if cfg.SafeMode != "safe" {
			t.Errorf("SafeMode = %q, want safe", cfg.SafeMode)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		p := write("typo.yaml", "highlite:\n  theme: dracula\n")
		if _, err := LoadConfig(p); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want %v", err, ErrConfigParse)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		p := write("bad.yaml", "output:\n  dirName: ../out\n")
		if _, err := LoadConfig(p); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want %v", err, ErrInvalidValue)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(filepath.Join(dir, "nope.yaml")); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want %v", err, ErrConfigNotFound)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig("definitely-not-a-config-name"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want %v", err, ErrConfigNotFound)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want %v", err, ErrEmptyConfigName)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("site")
	if len(paths) < 2 || paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths() = %v, want local candidates first", paths)
	}
}
