package docgrinder

import (
	"fmt"
	"strings"

	"github.com/alnah/go-docgrinder/internal/pipeline"
)

// Backend names an output format.
type Backend string

const (
	BackendHTML5 Backend = "html5"
	BackendPDF   Backend = "pdf"
)

// Backends lists every backend in conversion order.
var Backends = []Backend{BackendHTML5, BackendPDF}

// ParseBackend parses a backend name case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendHTML5, BackendPDF:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// HighlightMode selects how syntax-highlighting styles reach a document.
type HighlightMode int

const (
	// HighlightLinked emits CSS classes resolved by a linked theme stylesheet.
	HighlightLinked HighlightMode = iota
	// HighlightInline embeds styles into the document.
	HighlightInline
)

func (m HighlightMode) String() string {
	return m.pipeline().String()
}

func (m HighlightMode) pipeline() pipeline.HighlightMode {
	if m == HighlightInline {
		return pipeline.HighlightInline
	}
	return pipeline.HighlightLinked
}

// Defaults shared by both backends.
const (
	DefaultTheme            = "monokai"
	DefaultHighlightDirName = "highlight"
	DefaultOutputDirName    = "dist"
	highlighterName         = "chroma"
)

// BackendProfile is the fixed configuration of one backend. Profiles are
// values: With* methods return modified copies.
type BackendProfile struct {
	Backend      Backend
	Extension    string
	Highlighter  string
	Mode         HighlightMode
	Theme        string
	HighlightDir string // asset directory name inside the document root
}

// Profile returns the default profile of b.
func Profile(b Backend) (BackendProfile, error) {
	switch b {
	case BackendHTML5:
		return BackendProfile{
			Backend:      BackendHTML5,
			Extension:    ".html",
			Highlighter:  highlighterName,
			Mode:         HighlightLinked,
			Theme:        DefaultTheme,
			HighlightDir: DefaultHighlightDirName,
		}, nil
	case BackendPDF:
		return BackendProfile{
			Backend:      BackendPDF,
			Extension:    ".pdf",
			Highlighter:  highlighterName,
			Mode:         HighlightInline,
			Theme:        DefaultTheme,
			HighlightDir: DefaultHighlightDirName,
		}, nil
	}
	return BackendProfile{}, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
}

// WithTheme returns a copy of p using theme. An empty theme keeps p's.
func (p BackendProfile) WithTheme(theme string) BackendProfile {
	if theme != "" {
		p.Theme = theme
	}
	return p
}

// WithHighlightDir returns a copy of p using the given asset directory.
func (p BackendProfile) WithHighlightDir(dir string) BackendProfile {
	if dir != "" {
		p.HighlightDir = dir
	}
	return p
}

// Attributes returns the document attributes of p as a fresh map.
func (p BackendProfile) Attributes() map[string]string {
	attrs := map[string]string{
		pipeline.AttrSourceHighlighter: p.Highlighter,
		pipeline.AttrBackend:           string(p.Backend),
		pipeline.AttrOutfileSuffix:     p.Extension,
	}
	switch p.Mode {
	case HighlightLinked:
		attrs["highlightjsdir"] = p.HighlightDir
		attrs["highlightjs-theme"] = p.Theme
	case HighlightInline:
		attrs[pipeline.AttrChromaStyle] = p.Theme
	}
	return attrs
}

// ThemeStylesheet returns the theme stylesheet path relative to the
// document root, slash-separated. Empty for inline profiles.
func (p BackendProfile) ThemeStylesheet() string {
	if p.Mode != HighlightLinked || p.HighlightDir == "" {
		return ""
	}
	return pipeline.ThemeStylesheet(p.HighlightDir, p.Theme)
}
