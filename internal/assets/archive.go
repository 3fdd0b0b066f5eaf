package assets

import (
	"fmt"
	"os"
	"slices"

	"github.com/alnah/go-docgrinder/internal/fileutil"
)

// BundledThemes lists the highlight themes whose stylesheets ship in the
// embedded archive. highlightgen generates exactly these.
var BundledThemes = []string{
	"dracula",
	"github",
	"monokai",
	"nord",
	"solarized-dark",
	"solarized-light",
}

// IsBundledTheme reports whether name has a stylesheet in the embedded archive.
func IsBundledTheme(name string) bool {
	return slices.Contains(BundledThemes, name)
}

// ArchiveSource yields a path to a zip archive on disk. The returned cleanup
// must be called once the archive is no longer needed.
type ArchiveSource interface {
	Materialize() (path string, cleanup func(), err error)
	String() string
}

// EmbeddedArchive is the highlight archive compiled into the binary.
type EmbeddedArchive struct{}

// Materialize writes the embedded archive to a temporary file.
func (EmbeddedArchive) Materialize() (string, func(), error) {
	if len(highlightArchive) == 0 {
		return "", func() {}, fmt.Errorf("%w: embedded archive is empty", ErrArchiveNotFound)
	}
	path, cleanup, err := fileutil.WriteTempFile(highlightArchive, "zip")
	if err != nil {
		return "", func() {}, fmt.Errorf("writing embedded archive: %w", err)
	}
	return path, cleanup, nil
}

func (EmbeddedArchive) String() string { return "embedded highlight.zip" }

// EmbeddedArchiveBytes returns a copy of the embedded highlight archive.
func EmbeddedArchiveBytes() []byte {
	return append([]byte(nil), highlightArchive...)
}

// FileArchive is a user-supplied archive on disk.
type FileArchive struct {
	Path string
}

// Materialize checks the archive exists and returns its path unchanged.
func (a FileArchive) Materialize() (string, func(), error) {
	info, err := os.Stat(a.Path)
	if err != nil || info.IsDir() {
		return "", func() {}, fmt.Errorf("%w: %s", ErrArchiveNotFound, a.Path)
	}
	return a.Path, func() {}, nil
}

func (a FileArchive) String() string { return a.Path }

// NewArchiveSource returns a FileArchive for a non-empty path, EmbeddedArchive otherwise.
func NewArchiveSource(path string) ArchiveSource {
	if path == "" {
		return EmbeddedArchive{}
	}
	return FileArchive{Path: path}
}
