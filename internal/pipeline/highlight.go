package pipeline

import (
	"fmt"
	"strings"
)

// HighlightMode selects how chroma styles reach the rendered page.
type HighlightMode int

const (
	// HighlightLinked emits CSS classes; a theme stylesheet must be linked.
	HighlightLinked HighlightMode = iota
	// HighlightInline embeds style attributes into every token.
	HighlightInline
)

func (m HighlightMode) String() string {
	switch m {
	case HighlightLinked:
		return "linked"
	case HighlightInline:
		return "inline"
	default:
		return fmt.Sprintf("HighlightMode(%d)", int(m))
	}
}

// ThemeStylesheet returns the stylesheet path of theme inside the
// highlight asset directory, slash-separated for use in URLs.
func ThemeStylesheet(highlightDir, theme string) string {
	return strings.TrimSuffix(highlightDir, "/") + "/styles/" + theme + ".css"
}
