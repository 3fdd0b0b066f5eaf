package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/bytesparadise/libasciidoc"
	"github.com/bytesparadise/libasciidoc/pkg/configuration"
)

// Attribute names understood by libasciidoc.
const (
	AttrSourceHighlighter = "source-highlighter"
	AttrChromaStyle       = "chroma-style"
	AttrBackend           = "backend"
	AttrOutfileSuffix     = "outfilesuffix"
	AttrSafeModeName      = "safe-mode-name"
	AttrSafeModeLevel     = "safe-mode-level"
)

// AsciidocConverter converts AsciiDoc to HTML using libasciidoc.
//
// libasciidoc prefixes chroma classes differently from chroma's own
// stylesheets, so highlighting is always inline regardless of the page's
// highlight mode.
type AsciidocConverter struct {
	attrs map[string]string
}

// NewAsciidocConverter creates an AsciidocConverter passing attrs as document
// attributes. The chroma style is forced to theme.
func NewAsciidocConverter(theme string, attrs map[string]string) *AsciidocConverter {
	merged := make(map[string]string, len(attrs)+2)
	maps.Copy(merged, attrs)
	merged[AttrSourceHighlighter] = "chroma"
	merged[AttrChromaStyle] = theme
	return &AsciidocConverter{attrs: merged}
}

// Attributes returns a copy of the document attributes passed to libasciidoc.
func (c *AsciidocConverter) Attributes() map[string]string {
	return maps.Clone(c.attrs)
}

// ToHTML converts AsciiDoc to an HTML fragment titled by the document header.
func (c *AsciidocConverter) ToHTML(ctx context.Context, name string, source []byte) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings := []configuration.Setting{
		configuration.WithFilename(name),
		// libasciidoc only emits html5; the print backend reuses it
		configuration.WithBackEnd("html5"),
		configuration.WithHeaderFooter(false),
	}
	for _, k := range slices.Sorted(maps.Keys(c.attrs)) {
		if k == AttrBackend {
			continue
		}
		settings = append(settings, configuration.WithAttribute(k, c.attrs[k]))
	}

	type result struct {
		frag *Fragment
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		md, err := libasciidoc.Convert(bytes.NewReader(source), &buf, configuration.NewConfiguration(settings...))
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %s: %v", ErrHTMLConversion, name, err)}
			return
		}
		done <- result{frag: &Fragment{Title: md.Title, HTML: buf.String()}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

var _ MarkupConverter = (*AsciidocConverter)(nil)
