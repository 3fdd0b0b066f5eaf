package docgrinder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docgrinder/internal/assets"
	"github.com/alnah/go-docgrinder/internal/ctxlog"
	"github.com/alnah/go-docgrinder/internal/fileutil"
	"github.com/alnah/go-docgrinder/internal/pipeline"
)

// defaultTimeout bounds a single page load in the print backend.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	timeout   time.Duration
	assetPath string
	page      *PageSettings
	renderer  pdfRenderer
}

// WithTimeout sets the page load timeout of the print backend.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAssetPath loads base stylesheets from dir, falling back to the
// embedded ones for styles dir does not provide.
func WithAssetPath(dir string) Option {
	return func(c *converterConfig) {
		c.assetPath = dir
	}
}

// WithPage sets the PDF page settings.
func WithPage(p *PageSettings) Option {
	return func(c *converterConfig) {
		c.page = p
	}
}

// withRenderer replaces the browser-backed PDF renderer.
func withRenderer(r pdfRenderer) Option {
	return func(c *converterConfig) {
		c.renderer = r
	}
}

// ConvertOptions is the immutable configuration of one backend pass.
type ConvertOptions struct {
	BaseDir string         // document root
	DestDir string         // output root
	Backend Backend        // selects the default profile when Profile is zero
	Profile BackendProfile // overrides the default profile of Backend
	Safe    SafeMode
	MkDirs  bool // create DestDir when missing
	InPlace bool // unsupported; write next to the sources
}

// Artifact is one rendered file.
type Artifact struct {
	Source   string
	Output   string
	Duration time.Duration
}

// ConvertReport lists what a backend pass wrote.
type ConvertReport struct {
	Backend   Backend
	Artifacts []Artifact
	Duration  time.Duration
}

// Converter renders document trees for every backend. Create it with
// NewConverter and Close it to release the browser.
type Converter struct {
	cfg      converterConfig
	styles   assets.StyleLoader
	css      pipeline.CSSInjector
	renderer pdfRenderer
}

// NewConverter creates a Converter. The browser is only started by the
// first pdf conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	c := &Converter{
		cfg:      cfg,
		styles:   resolver,
		css:      &pipeline.CSSInjection{},
		renderer: cfg.renderer,
	}
	if c.renderer == nil {
		c.renderer = newRodRenderer(cfg.timeout)
	}
	return c, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// ConvertDirectory renders every document under opts.BaseDir into
// opts.DestDir with one backend. The first failure aborts the pass.
func (c *Converter) ConvertDirectory(ctx context.Context, opts ConvertOptions) (*ConvertReport, error) {
	start := time.Now()
	log := ctxlog.FromContext(ctx)

	opts, err := c.resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	opts.Profile = linkableProfile(ctx, opts.Profile, opts.BaseDir)
	profile := opts.Profile

	docs, err := DiscoverDocuments(opts.BaseDir, opts.DestDir, profile.HighlightDir)
	if err != nil {
		return nil, fmt.Errorf("discovering documents in %s: %w", opts.BaseDir, err)
	}

	report := &ConvertReport{Backend: profile.Backend}
	if len(docs) == 0 {
		log.Warn("no documents found", "dir", opts.BaseDir, "backend", profile.Backend)
		report.Duration = time.Since(start)
		return report, nil
	}

	baseCSS, err := c.styles.LoadStyle(styleFor(profile.Backend))
	if err != nil {
		return nil, fmt.Errorf("loading base style: %w", err)
	}

	engines := newEngineSet(profile, opts.Safe)
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docStart := time.Now()
		out := doc.OutputPath(opts.DestDir, profile.Extension)
		if err := c.convertDocument(ctx, engines, opts, doc, baseCSS, out); err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Rel, err)
		}

		a := Artifact{Source: doc.Path, Output: out, Duration: time.Since(docStart)}
		report.Artifacts = append(report.Artifacts, a)
		log.Info("converted", "backend", profile.Backend, "source", doc.Rel, "output", out, "duration", a.Duration)
	}

	if profile.Mode == HighlightLinked {
		if err := mirrorHighlightAssets(opts.BaseDir, opts.DestDir, profile.HighlightDir); err != nil {
			return nil, err
		}
	}

	report.Duration = time.Since(start)
	return report, nil
}

// resolveOptions validates opts and fills in the default profile and
// absolute directories.
func (c *Converter) resolveOptions(opts ConvertOptions) (ConvertOptions, error) {
	if opts.InPlace {
		return opts, ErrInPlaceUnsupported
	}

	if opts.Profile.Backend == "" {
		p, err := Profile(opts.Backend)
		if err != nil {
			return opts, err
		}
		opts.Profile = p
	}
	opts.Backend = opts.Profile.Backend

	base, err := filepath.Abs(opts.BaseDir)
	if err != nil {
		return opts, err
	}
	kind, err := fileutil.Stat(base)
	if err != nil {
		return opts, err
	}
	if kind != fileutil.KindDir {
		return opts, fmt.Errorf("%w: %s", ErrNotDirectory, opts.BaseDir)
	}
	if opts.DestDir == "" {
		opts.DestDir = filepath.Join(filepath.Dir(base), DefaultOutputDirName)
	}

	// Documents are walked and contained under the real root; the default
	// destination stays next to the path the caller named.
	if opts.BaseDir, err = filepath.EvalSymlinks(base); err != nil {
		return opts, err
	}
	if opts.DestDir, err = filepath.Abs(opts.DestDir); err != nil {
		return opts, err
	}

	if !fileutil.DirExists(opts.DestDir) {
		if !opts.MkDirs {
			return opts, fmt.Errorf("%w: %s", ErrDestinationMissing, opts.DestDir)
		}
		if err := os.MkdirAll(opts.DestDir, fileutil.DirPermissions); err != nil {
			return opts, fmt.Errorf("creating %s: %w", opts.DestDir, err)
		}
	}
	return opts, nil
}

// convertDocument renders one document and writes it to out.
func (c *Converter) convertDocument(ctx context.Context, engines *engineSet, opts ConvertOptions, doc Document, baseCSS, out string) error {
	source, err := os.ReadFile(doc.Path) // #nosec G304 -- discovered under BaseDir
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	frag, err := engines.forFormat(doc.Format).ToHTML(ctx, filepath.Base(doc.Path), source)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	page := pipeline.WrapPage(frag, name)
	page = c.css.InjectCSS(ctx, page, baseCSS)

	profile := opts.Profile
	if sheet := profile.ThemeStylesheet(); sheet != "" {
		href, err := relativeHref(filepath.Dir(out), filepath.Join(opts.DestDir, filepath.FromSlash(sheet)))
		if err != nil {
			return err
		}
		page = pipeline.InjectStylesheetLink(page, href)
	}

	page, err = pipeline.RewritePaths(page, pipeline.PathPolicy{
		SourceDir:  filepath.Dir(doc.Path),
		Root:       opts.BaseDir,
		Contain:    opts.Safe.Contained(),
		Absolutize: profile.Backend == BackendPDF,
	})
	if err != nil {
		return fmt.Errorf("rewriting paths: %w", err)
	}

	if profile.Backend == BackendHTML5 {
		return fileutil.WriteFile(out, []byte(page))
	}
	return c.print(ctx, page, out)
}

// print renders page through the PDF renderer and writes the result to out.
func (c *Converter) print(ctx context.Context, page, out string) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile([]byte(page), "html")
	if err != nil {
		return err
	}
	defer cleanup()

	pdf, err := c.renderer.RenderFromFile(ctx, tmpPath, c.cfg.page)
	if err != nil {
		return err
	}
	return fileutil.WriteFile(out, pdf)
}

// linkableProfile switches a linked profile to inline highlighting when its
// theme stylesheet is absent from the highlight directory, so code blocks
// never link a file that does not exist.
func linkableProfile(ctx context.Context, p BackendProfile, baseDir string) BackendProfile {
	sheet := p.ThemeStylesheet()
	if sheet == "" {
		return p
	}
	path := filepath.Join(baseDir, filepath.FromSlash(sheet))
	if fileutil.FileExists(path) {
		return p
	}
	ctxlog.FromContext(ctx).Warn("theme stylesheet missing, inlining highlight styles",
		"backend", p.Backend, "theme", p.Theme, "stylesheet", path)
	p.Mode = HighlightInline
	return p
}

// mirrorHighlightAssets copies <base>/<dir> into <dest>/<dir> so linked
// theme stylesheets resolve from the published tree.
func mirrorHighlightAssets(base, dest, dir string) error {
	if err := fileutil.CopyTree(filepath.Join(base, dir), filepath.Join(dest, dir)); err != nil {
		return fmt.Errorf("mirroring highlight assets: %w", err)
	}
	return nil
}

// relativeHref returns target relative to fromDir as a URL path.
func relativeHref(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func styleFor(b Backend) string {
	if b == BackendPDF {
		return assets.StylePrint
	}
	return assets.StyleWeb
}

// engineSet holds one converter per source format for a backend pass.
type engineSet struct {
	markdown pipeline.MarkupConverter
	asciidoc pipeline.MarkupConverter
}

func newEngineSet(p BackendProfile, safe SafeMode) *engineSet {
	attrs := p.Attributes()
	for k, v := range safe.attributes() {
		attrs[k] = v
	}
	return &engineSet{
		markdown: pipeline.NewGoldmarkConverter(p.Mode.pipeline(), p.Theme),
		asciidoc: pipeline.NewAsciidocConverter(p.Theme, attrs),
	}
}

func (e *engineSet) forFormat(f Format) pipeline.MarkupConverter {
	if f == FormatAsciiDoc {
		return e.asciidoc
	}
	return e.markdown
}
