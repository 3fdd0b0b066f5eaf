// Package pipeline turns one markup document into a standalone HTML page.
//
// Stages:
//   - Markdown preprocessing (line endings, ==mark== syntax)
//   - Markup to HTML fragment via goldmark (Markdown) or libasciidoc (AsciiDoc)
//   - Page assembly around the fragment (title, base stylesheet, theme link)
//   - Relative path handling (file:// rewriting, safe-mode containment)
//
// Code highlighting runs in one of two modes: linked, where chroma emits CSS
// classes resolved by a theme stylesheet next to the output, and inline,
// where styles are embedded so the page is self-contained for printing.
//
// PDF printing lives in the root docgrinder package (go-rod).
package pipeline
