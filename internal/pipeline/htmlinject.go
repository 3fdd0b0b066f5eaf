package pipeline

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// pageTemplate wraps an engine fragment in a complete HTML5 document.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// WrapPage returns a standalone HTML5 document around frag. An empty title
// falls back to fallbackTitle.
func WrapPage(frag *Fragment, fallbackTitle string) string {
	title := frag.Title
	if title == "" {
		title = fallbackTitle
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), frag.HTML)
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or at the
// start of the content, whichever is found first.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}
	return injectHead(htmlContent, "<style>"+sanitizeCSS(cssContent)+"</style>")
}

// InjectStylesheetLink inserts a <link rel="stylesheet"> pointing at href.
func InjectStylesheetLink(htmlContent, href string) string {
	if href == "" {
		return htmlContent
	}
	return injectHead(htmlContent, `<link rel="stylesheet" href="`+html.EscapeString(href)+`">`)
}

// injectHead places block into the document head.
func injectHead(htmlContent, block string) string {
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return htmlContent[:pos] + block + htmlContent[pos:]
		}
	}

	return block + htmlContent
}

// sanitizeCSS escapes </ so the content cannot close the <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ CSSInjector = (*CSSInjection)(nil)
