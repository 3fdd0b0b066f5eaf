package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docgrinder/internal/config"
)

// commonFlags holds flags that control output verbosity and config lookup.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	help    bool
}

// highlightFlags holds syntax-highlighting flags.
type highlightFlags struct {
	noBootstrap bool
	archive     string
	theme       string
	printTheme  string
	dirName     string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size   string
	margin float64
}

// cliFlags holds every flag accepted by docgrinder.
type cliFlags struct {
	common      commonFlags
	highlight   highlightFlags
	page        pageFlags
	outputDir   string
	safeMode    string
	assetPath   string
	timeout     string
	listThemes  bool
	printConfig bool

	// set records which flags were given explicitly, so defaults never
	// override config file values.
	set map[string]bool
}

// addCommonFlags adds verbosity and config flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

// addHighlightFlags adds highlight asset and theme flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.noBootstrap, "no-bootstrap", false, "do not extract highlight assets")
	fs.StringVar(&f.archive, "highlight-archive", "", "highlight asset zip (default: bundled)")
	fs.StringVar(&f.dirName, "highlight-dir", config.DefaultHighlightDirName, "highlight directory name inside the input")
	fs.StringVar(&f.theme, "theme", config.DefaultTheme, "highlight theme for html5")
	fs.StringVar(&f.printTheme, "print-theme", "", "highlight theme for pdf (default: --theme)")
}

// addPageFlags adds PDF page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", config.DefaultPageSize, "page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", config.DefaultMargin, "margin in inches (0.25-3.0)")
}

// parseFlags parses args (without the program name) and returns the flags
// and the positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("docgrinder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	f := &cliFlags{}
	addCommonFlags(fs, &f.common)
	addHighlightFlags(fs, &f.highlight)
	addPageFlags(fs, &f.page)
	fs.StringVarP(&f.outputDir, "output-dir", "o", config.DefaultOutputDirName, "output directory name, created next to the input")
	fs.StringVar(&f.safeMode, "safe-mode", config.DefaultSafeMode, "unsafe, safe, server, secure")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding styles/{web,print}.css")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.listThemes, "list-themes", false, "list highlight themes and exit")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}

// mergeFlags merges explicitly set CLI flags into cfg. CLI values override
// config values.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.set["output-dir"] {
		cfg.Output.DirName = f.outputDir
	}
	if f.set["highlight-dir"] {
		cfg.Highlight.DirName = f.highlight.dirName
	}
	if f.highlight.noBootstrap {
		cfg.Highlight.Bootstrap = false
	}
	if f.set["highlight-archive"] {
		cfg.Highlight.Archive = f.highlight.archive
	}
	if f.set["theme"] {
		cfg.Highlight.Theme = f.highlight.theme
	}
	if f.set["print-theme"] {
		cfg.Highlight.PrintTheme = f.highlight.printTheme
	}
	if f.set["asset-path"] {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.set["page-size"] {
		cfg.Page.Size = f.page.size
	}
	if f.set["margin"] {
		cfg.Page.Margin = f.page.margin
	}
	if f.set["safe-mode"] {
		cfg.SafeMode = f.safeMode
	}
	if f.set["timeout"] {
		cfg.Timeout = f.timeout
	}
}
