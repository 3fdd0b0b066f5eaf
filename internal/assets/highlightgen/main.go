// Command highlightgen regenerates highlight.zip from chroma's style registry.
//
// Usage:
//
//	go run ./highlightgen -out highlight.zip
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mholt/archiver"
)

// themes bundled into the archive; must match assets.BundledThemes.
var themes = []string{
	"monokai",
	"github",
	"dracula",
	"nord",
	"solarized-dark",
	"solarized-light",
}

func main() {
	out := flag.String("out", "highlight.zip", "archive path to write")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintf(os.Stderr, "highlightgen: %v\n", err)
		os.Exit(1)
	}
}

func run(out string) error {
	tmp, err := os.MkdirTemp("", "highlightgen-")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	stylesDir := filepath.Join(tmp, "styles")
	if err := os.MkdirAll(stylesDir, 0o750); err != nil {
		return err
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	for _, name := range themes {
		style, ok := styles.Registry[name]
		if !ok {
			return fmt.Errorf("unknown chroma style %q", name)
		}
		f, err := os.Create(filepath.Join(stylesDir, name+".css")) // #nosec G304 -- temp dir
		if err != nil {
			return err
		}
		if err := formatter.WriteCSS(f, style); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	z := archiver.NewZip()
	z.OverwriteExisting = true
	return z.Archive([]string{stylesDir}, out)
}
