package docgrinder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-docgrinder/internal/ctxlog"
	"github.com/alnah/go-docgrinder/internal/fileutil"
)

// RunConfig configures a full run over one document root.
type RunConfig struct {
	InputDir         string
	OutputDirName    string        // sibling of InputDir; default "dist"
	HighlightDirName string        // inside InputDir; default "highlight"
	Bootstrap        bool          // extract highlight assets when missing
	HighlightArchive string        // zip on disk; empty selects the embedded archive
	Safe             SafeMode      // default SafeModeUnsafe
	Theme            string        // web theme; default "monokai"
	PrintTheme       string        // print theme; empty means Theme
	AssetPath        string        // custom base stylesheet directory
	Page             *PageSettings // nil means DefaultPageSettings
	Timeout          time.Duration // page load timeout of the print backend
}

// Report summarizes a run.
type Report struct {
	InputDir    string
	OutputDir   string
	Bootstrap   *BootstrapResult // nil when bootstrapping is disabled
	Conversions []*ConvertReport // html5 first, then pdf
	Duration    time.Duration
}

// Artifacts returns the number of files written across all backends.
func (r *Report) Artifacts() int {
	n := 0
	for _, c := range r.Conversions {
		n += len(c.Artifacts)
	}
	return n
}

// Run validates cfg.InputDir, bootstraps highlight assets when enabled, then
// converts the tree with the html5 backend followed by the pdf backend.
// opts configure the Converter used for both passes.
func Run(ctx context.Context, cfg RunConfig, opts ...Option) (*Report, error) {
	start := time.Now()
	log := ctxlog.FromContext(ctx)

	inputDir, err := validateInputDir(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	outName := cfg.OutputDirName
	if outName == "" {
		outName = DefaultOutputDirName
	}
	hlName := cfg.HighlightDirName
	if hlName == "" {
		hlName = DefaultHighlightDirName
	}

	report := &Report{
		InputDir:  inputDir,
		OutputDir: filepath.Join(filepath.Dir(inputDir), outName),
	}

	if cfg.Bootstrap {
		b := &Bootstrapper{DirName: hlName, ArchivePath: cfg.HighlightArchive}
		res, err := b.Bootstrap(ctx, inputDir)
		if err != nil {
			return nil, err
		}
		report.Bootstrap = &res
	}

	page := cfg.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	convOpts := append([]Option{WithTimeout(cfg.Timeout), WithAssetPath(cfg.AssetPath), WithPage(page)}, opts...)
	conv, err := NewConverter(convOpts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			log.Warn("closing browser", "error", cerr)
		}
	}()

	printTheme := cfg.PrintTheme
	if printTheme == "" {
		printTheme = cfg.Theme
	}
	themes := map[Backend]string{BackendHTML5: cfg.Theme, BackendPDF: printTheme}

	for _, backend := range Backends {
		profile, err := Profile(backend)
		if err != nil {
			return nil, err
		}
		profile = profile.WithTheme(themes[backend]).WithHighlightDir(hlName)

		log.Debug("converting", "backend", backend, "theme", profile.Theme, "safe_mode", cfg.Safe)
		cr, err := conv.ConvertDirectory(ctx, ConvertOptions{
			BaseDir: inputDir,
			DestDir: report.OutputDir,
			Profile: profile,
			Safe:    cfg.Safe,
			MkDirs:  true,
		})
		if err != nil {
			return nil, fmt.Errorf("%s backend: %w", backend, err)
		}
		report.Conversions = append(report.Conversions, cr)
	}

	report.Duration = time.Since(start)
	log.Info("done", "input", inputDir, "output", report.OutputDir, "files", report.Artifacts(), "duration", report.Duration)
	return report, nil
}

// validateInputDir returns the absolute form of dir, or ErrWrongArgs when it
// is empty and ErrNotDirectory when it is anything but an existing directory.
func validateInputDir(dir string) (string, error) {
	if dir == "" {
		return "", ErrWrongArgs
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotDirectory, dir, err)
	}
	kind, err := fileutil.Stat(abs)
	if err != nil || kind != fileutil.KindDir {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return abs, nil
}
