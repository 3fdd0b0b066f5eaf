package docgrinder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Format identifies a source markup language.
type Format int

const (
	FormatMarkdown Format = iota
	FormatAsciiDoc
)

func (f Format) String() string {
	if f == FormatAsciiDoc {
		return "asciidoc"
	}
	return "markdown"
}

// sourceExtensions maps lowercase file extensions to formats.
var sourceExtensions = map[string]Format{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".adoc":     FormatAsciiDoc,
	".asciidoc": FormatAsciiDoc,
	".asc":      FormatAsciiDoc,
}

// Document is one source file found under a document root.
type Document struct {
	Path   string // absolute
	Rel    string // relative to the document root, OS-separated
	Format Format
}

// OutputPath returns the path of the rendered document under destDir.
func (d Document) OutputPath(destDir, ext string) string {
	return filepath.Join(destDir, strings.TrimSuffix(d.Rel, filepath.Ext(d.Rel))+ext)
}

// FormatOf returns the format of path and whether it is a supported source.
func FormatOf(path string) (Format, bool) {
	f, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// DiscoverDocuments returns the source documents under baseDir in lexical
// order. Entries whose name starts with "_" or "." are skipped, as are the
// directories in skip (absolute, or relative to baseDir). Two documents
// that would render to the same output path yield ErrOutputCollision.
func DiscoverDocuments(baseDir string, skip ...string) ([]Document, error) {
	root, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	// WalkDir does not follow a symlinked root.
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return nil, err
	}

	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s == "" {
			continue
		}
		if !filepath.IsAbs(s) {
			s = filepath.Join(root, s)
		}
		if resolved, err := filepath.EvalSymlinks(s); err == nil {
			s = resolved
		}
		skipped[filepath.Clean(s)] = true
	}

	var docs []Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || skipped[path] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		format, ok := FormatOf(name)
		if !ok || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		docs = append(docs, Document{Path: path, Rel: rel, Format: format})
		return nil
	})
	if err != nil {
		return nil, err
	}

	stems := make(map[string]string, len(docs))
	for _, d := range docs {
		stem := strings.TrimSuffix(d.Rel, filepath.Ext(d.Rel))
		if prev, ok := stems[stem]; ok {
			return nil, fmt.Errorf("%w: %s and %s", ErrOutputCollision, prev, d.Rel)
		}
		stems[stem] = d.Rel
	}
	return docs, nil
}
