package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	docgrinder "github.com/alnah/go-docgrinder"
	"github.com/alnah/go-docgrinder/internal/assets"
	"github.com/alnah/go-docgrinder/internal/config"
	"github.com/alnah/go-docgrinder/internal/ctxlog"
	"github.com/alnah/go-docgrinder/internal/fileutil"
	"github.com/alnah/go-docgrinder/internal/hints"
	"github.com/alnah/go-docgrinder/internal/yamlutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain runs the CLI and converts the outcome into an exit code,
// printing errors with hints to env.Stderr.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := run(ctx, args, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// run parses args (without the program name), resolves the configuration
// and executes one conversion run.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 1 && args[0] == "version" {
		fmt.Fprintf(env.Stdout, "docgrinder %s\n", Version)
		return nil
	}

	flags, positional, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", docgrinder.ErrWrongArgs, err)
	}
	if flags.common.help {
		printUsage(env.Stdout)
		return nil
	}
	if flags.listThemes {
		printThemes(env.Stdout)
		return nil
	}

	log := ctxlog.New(env.Stderr, logLevel(flags.common))
	ctx = ctxlog.WithLogger(ctx, log)
	configureEngineLogs(env.Stderr, flags.common)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(format, args...))
	}))

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if flags.printConfig {
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	if len(positional) != 1 {
		return fmt.Errorf("%w: got %d", docgrinder.ErrWrongArgs, len(positional))
	}

	runCfg, err := buildRunConfig(positional[0], cfg)
	if err != nil {
		return err
	}

	report, err := env.Run(ctx, runCfg)
	if err != nil {
		if errors.Is(err, docgrinder.ErrHighlightBlocked) {
			target := filepath.Join(positional[0], cfg.Highlight.DirName)
			return fmt.Errorf("%w%s", err, hints.ForHighlightBlocked(target))
		}
		return err
	}

	if !flags.common.quiet {
		printReport(env.Stdout, report, flags.common.verbose)
	}
	return nil
}

// loadConfig loads the named config (or defaults), merges explicit flags
// and validates the result.
func loadConfig(flags *cliFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(flags.common.config) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(flags.common.config)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRunConfig translates a validated config into a RunConfig.
func buildRunConfig(inputDir string, cfg *config.Config) (docgrinder.RunConfig, error) {
	safe, err := docgrinder.ParseSafeMode(cfg.SafeMode)
	if err != nil {
		return docgrinder.RunConfig{}, err
	}

	page := docgrinder.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}

	return docgrinder.RunConfig{
		InputDir:         inputDir,
		OutputDirName:    cfg.Output.DirName,
		HighlightDirName: cfg.Highlight.DirName,
		Bootstrap:        cfg.Highlight.Bootstrap,
		HighlightArchive: cfg.Highlight.Archive,
		Safe:             safe,
		Theme:            cfg.Highlight.Theme,
		PrintTheme:       cfg.EffectivePrintTheme(),
		AssetPath:        cfg.Assets.BasePath,
		Page:             page,
		Timeout:          cfg.TimeoutDuration(),
	}, nil
}

// logLevel maps verbosity flags to a slog level.
func logLevel(f commonFlags) slog.Level {
	switch {
	case f.verbose:
		return slog.LevelDebug
	case f.quiet:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// configureEngineLogs routes the AsciiDoc engine's logrus output to w at a
// level matching the CLI verbosity.
func configureEngineLogs(w io.Writer, f commonFlags) {
	logrus.SetOutput(w)
	switch {
	case f.verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case f.quiet:
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// printThemes lists every theme, marking those shipped in the bundled
// highlight archive. Other themes are always inlined.
func printThemes(w io.Writer) {
	for _, name := range config.Themes() {
		if assets.IsBundledTheme(name) {
			fmt.Fprintf(w, "%s\tbundled\n", name)
			continue
		}
		fmt.Fprintln(w, name)
	}
}

// printReport prints a summary of the run.
func printReport(w io.Writer, r *docgrinder.Report, verbose bool) {
	if b := r.Bootstrap; b != nil {
		if b.Skipped {
			fmt.Fprintf(w, "Highlight assets: %s (existing)\n", b.Target)
		} else {
			fmt.Fprintf(w, "Highlight assets: %s (%d files from %s)\n", b.Target, b.Files, b.Source)
		}
	}
	for _, c := range r.Conversions {
		fmt.Fprintf(w, "%-6s %d file(s) in %s\n", c.Backend+":", len(c.Artifacts), c.Duration.Round(time.Millisecond))
		if verbose {
			for _, a := range c.Artifacts {
				fmt.Fprintf(w, "  %s -> %s (%s)\n", a.Source, a.Output, a.Duration.Round(time.Millisecond))
			}
		}
	}
	fmt.Fprintf(w, "Output: %s (%d file(s), %s)\n", r.OutputDir, r.Artifacts(), r.Duration.Round(time.Millisecond))
}

// hintFor returns an actionable hint for err, or "". Hints that need run
// context are attached where the error is returned.
func hintFor(err error) string {
	switch {
	case errors.Is(err, docgrinder.ErrWrongArgs):
		return hints.ForUsage()
	case errors.Is(err, docgrinder.ErrArchiveNotFound):
		return hints.ForArchiveNotFound()
	case errors.Is(err, docgrinder.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, docgrinder.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrUnknownTheme):
		return hints.ForThemeNotFound(config.Themes())
	}
	return ""
}
