package docgrinder

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/mholt/archiver"

	"github.com/alnah/go-docgrinder/internal/assets"
	"github.com/alnah/go-docgrinder/internal/ctxlog"
	"github.com/alnah/go-docgrinder/internal/fileutil"
)

const (
	// lockFileName guards the check-then-extract sequence across processes.
	lockFileName     = ".highlight.lock"
	defaultLockRetry = 100 * time.Millisecond
)

// BootstrapResult describes what a bootstrap did.
type BootstrapResult struct {
	Target  string // absolute path of the highlight asset directory
	Source  string // archive description, empty when skipped
	Skipped bool   // target already existed as a directory
	Files   int    // regular files extracted
}

// Bootstrapper extracts the highlight asset archive into a document root.
// The zero value extracts the embedded archive into "highlight".
type Bootstrapper struct {
	DirName     string        // target name inside the document root
	ArchivePath string        // zip on disk; empty selects the embedded archive
	LockRetry   time.Duration // poll interval while another process holds the lock
}

func (b *Bootstrapper) dirName() string {
	if b.DirName == "" {
		return DefaultHighlightDirName
	}
	return b.DirName
}

// Bootstrap ensures <inputDir>/<DirName> exists. An existing directory is
// left untouched whatever it contains. A non-directory in its place yields
// ErrHighlightBlocked. Otherwise the archive is extracted; a failed
// extraction removes the partial target and yields ErrArchiveExtract.
func (b *Bootstrapper) Bootstrap(ctx context.Context, inputDir string) (BootstrapResult, error) {
	log := ctxlog.FromContext(ctx)

	root, err := filepath.Abs(inputDir)
	if err != nil {
		return BootstrapResult{}, err
	}
	res := BootstrapResult{Target: filepath.Join(root, b.dirName())}

	if done, err := b.inspect(ctx, &res); done || err != nil {
		return res, err
	}

	// The lock is taken only on the extraction path.
	retry := b.LockRetry
	if retry <= 0 {
		retry = defaultLockRetry
	}
	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLockContext(ctx, retry)
	if err != nil {
		return res, fmt.Errorf("acquiring %s: %w", lock.Path(), err)
	}
	if !locked {
		return res, fmt.Errorf("acquiring %s: lock not obtained", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have extracted while we waited.
	if done, err := b.inspect(ctx, &res); done || err != nil {
		return res, err
	}

	source := assets.NewArchiveSource(b.ArchivePath)
	res.Source = source.String()

	archivePath, cleanup, err := source.Materialize()
	if err != nil {
		if errors.Is(err, assets.ErrArchiveNotFound) {
			return res, fmt.Errorf("%w: %s", ErrArchiveNotFound, source)
		}
		return res, fmt.Errorf("%w: %v", ErrArchiveExtract, err)
	}
	defer cleanup()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	files, err := checkArchive(archivePath)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %v", ErrArchiveExtract, source, err)
	}

	z := archiver.NewZip()
	z.OverwriteExisting = false
	z.MkdirAll = true
	if err := z.Unarchive(archivePath, res.Target); err != nil {
		_ = os.RemoveAll(res.Target)
		return res, fmt.Errorf("%w: %s: %v", ErrArchiveExtract, source, err)
	}

	res.Files = files
	log.Info("highlight assets extracted", "source", res.Source, "target", res.Target, "files", files)
	return res, nil
}

// inspect reports done when the target already exists as a directory
// (marking res skipped), and ErrHighlightBlocked when something else is in
// its place.
func (b *Bootstrapper) inspect(ctx context.Context, res *BootstrapResult) (bool, error) {
	kind, err := fileutil.Stat(res.Target)
	if err != nil {
		return false, fmt.Errorf("inspecting %s: %w", res.Target, err)
	}
	switch kind {
	case fileutil.KindDir:
		ctxlog.FromContext(ctx).Debug("highlight assets present", "target", res.Target)
		res.Skipped = true
		return true, nil
	case fileutil.KindFile:
		return false, fmt.Errorf("%w: %s", ErrHighlightBlocked, res.Target)
	}
	return false, nil
}

// checkArchive counts the regular files in a zip and rejects entries that
// would land outside the extraction directory.
func checkArchive(path string) (int, error) {
	files := 0
	err := archiver.NewZip().Walk(path, func(f archiver.File) error {
		hdr, ok := f.Header.(zip.FileHeader)
		if !ok {
			return fmt.Errorf("unexpected header type %T", f.Header)
		}
		if !filepath.IsLocal(filepath.FromSlash(hdr.Name)) {
			return fmt.Errorf("entry %q escapes the extraction directory", hdr.Name)
		}
		if !f.IsDir() {
			files++
		}
		return nil
	})
	return files, err
}
