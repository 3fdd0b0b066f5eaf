package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") unexpected error: %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("HasCustomLoader() = true without custom path")
	}

	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStyle(t, dir, "web", "/* custom web */")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasCustomLoader() {
		t.Fatal("HasCustomLoader() = false with custom path")
	}

	tests := []struct {
		name        string
		style       string
		wantErr     error
		wantContain string
	}{
		{
			name:        "custom style takes precedence",
			style:       StyleWeb,
			wantContain: "custom web",
		},
		{
			name:        "falls back to embedded",
			style:       StylePrint,
			wantContain: "page-break-inside",
		},
		{
			name:    "missing everywhere",
			style:   "nope",
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "invalid name does not fall back",
			style:   "../web",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.style, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) = %q, want it to contain %q", tt.style, got, tt.wantContain)
			}
		})
	}
}
