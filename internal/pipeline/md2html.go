package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates a markup engine failed to produce HTML.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Fragment is the body HTML of one document plus its title.
type Fragment struct {
	Title string
	HTML  string
}

// MarkupConverter converts one markup document to an HTML fragment.
// name is the source file name and is used for diagnostics only.
type MarkupConverter interface {
	ToHTML(ctx context.Context, name string, source []byte) (*Fragment, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes and
// chroma highlighting in the given mode and theme.
func NewGoldmarkConverter(mode HighlightMode, theme string) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(theme),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(mode == HighlightLinked),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown to an HTML fragment. The title is the text of the
// first level-one heading, empty when there is none. goldmark has no context
// support, so conversion runs in a goroutine raced against ctx.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, name string, source []byte) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		frag *Fragment
		err  error
	}
	done := make(chan result, 1)

	go func() {
		src := []byte(preprocessMarkdown(string(source)))
		doc := c.md.Parser().Parse(text.NewReader(src))

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %s: %v", ErrHTMLConversion, name, err)}
			return
		}
		done <- result{frag: &Fragment{
			Title: markdownTitle(doc, src),
			HTML:  markPlaceholders(buf.String()),
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

// markdownTitle returns the plain text of the first level-one heading.
func markdownTitle(doc ast.Node, src []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = inlineText(h, src)
		return ast.WalkStop, nil
	})
	return strings.NewReplacer(markStart, "", markEnd, "").Replace(title)
}

func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(sb.String())
}

var _ MarkupConverter = (*GoldmarkConverter)(nil)
