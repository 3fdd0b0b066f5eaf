package docgrinder

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/alnah/go-docgrinder/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// writeZip builds a zip archive at path from slash names to contents.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestBootstrap
// ---------------------------------------------------------------------------

func TestBootstrap_ExtractsEmbeddedArchive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	b := &Bootstrapper{}

	res, err := b.Bootstrap(context.Background(), root)
	if err != nil {
		t.Fatalf("Bootstrap() unexpected error: %v", err)
	}
	if res.Skipped {
		t.Error("Bootstrap() Skipped = true on fresh tree")
	}
	if res.Files == 0 {
		t.Error("Bootstrap() extracted no files")
	}
	if !fileutil.FileExists(filepath.Join(root, "highlight", "styles", "monokai.css")) {
		t.Error("monokai.css not extracted")
	}
}

func TestBootstrap_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	b := &Bootstrapper{}
	ctx := context.Background()

	if _, err := b.Bootstrap(ctx, root); err != nil {
		t.Fatalf("first Bootstrap() error: %v", err)
	}

	css := filepath.Join(root, "highlight", "styles", "monokai.css")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(css, old, old); err != nil {
		t.Fatal(err)
	}

	res, err := b.Bootstrap(ctx, root)
	if err != nil {
		t.Fatalf("second Bootstrap() error: %v", err)
	}
	if !res.Skipped {
		t.Error("second Bootstrap() Skipped = false, want true")
	}

	info, err := os.Stat(css)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Errorf("mtime changed: %v, want %v", info.ModTime(), old)
	}
}

func TestBootstrap_ExistingDirectoryAnyContents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "highlight"), 0o750); err != nil {
		t.Fatal(err)
	}

	res, err := (&Bootstrapper{ArchivePath: filepath.Join(root, "missing.zip")}).Bootstrap(context.Background(), root)
	if err != nil {
		t.Fatalf("Bootstrap() unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Error("Bootstrap() should skip an existing empty directory")
	}
}

func TestBootstrap_ExistingDirectoryTakesNoLock(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "highlight"), 0o750); err != nil {
		t.Fatal(err)
	}

	res, err := (&Bootstrapper{}).Bootstrap(context.Background(), root)
	if err != nil {
		t.Fatalf("Bootstrap() unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Error("Bootstrap() Skipped = false, want true")
	}
	if fileutil.FileExists(filepath.Join(root, lockFileName)) {
		t.Error("lock file created although nothing was extracted")
	}
}

func TestBootstrap_ReadOnlyRootWithAssets(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for this user")
	}

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "highlight"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(root, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(root, 0o750) })

	res, err := (&Bootstrapper{}).Bootstrap(context.Background(), root)
	if err != nil {
		t.Fatalf("Bootstrap() on read-only root: %v", err)
	}
	if !res.Skipped {
		t.Error("Bootstrap() Skipped = false, want true")
	}
}

func TestBootstrap_BlockedTargetTakesNoLock(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "highlight"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := (&Bootstrapper{}).Bootstrap(context.Background(), root)
	if !errors.Is(err, ErrHighlightBlocked) {
		t.Fatalf("Bootstrap() error = %v, want ErrHighlightBlocked", err)
	}
	if fileutil.FileExists(filepath.Join(root, lockFileName)) {
		t.Error("lock file created for a blocked target")
	}
}

func TestBootstrap_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, root string) *Bootstrapper
		wantErr error
	}{
		{
			name: "regular file blocks target",
			setup: func(t *testing.T, root string) *Bootstrapper {
				if err := os.WriteFile(filepath.Join(root, "highlight"), []byte("x"), 0o600); err != nil {
					t.Fatal(err)
				}
				return &Bootstrapper{}
			},
			wantErr: ErrHighlightBlocked,
		},
		{
			name: "configured archive missing",
			setup: func(t *testing.T, root string) *Bootstrapper {
				return &Bootstrapper{ArchivePath: filepath.Join(t.TempDir(), "nope.zip")}
			},
			wantErr: ErrArchiveNotFound,
		},
		{
			name: "corrupt archive",
			setup: func(t *testing.T, root string) *Bootstrapper {
				path := filepath.Join(t.TempDir(), "corrupt.zip")
				if err := os.WriteFile(path, []byte("not a zip at all"), 0o600); err != nil {
					t.Fatal(err)
				}
				return &Bootstrapper{ArchivePath: path}
			},
			wantErr: ErrArchiveExtract,
		},
		{
			name: "entry escaping the target",
			setup: func(t *testing.T, root string) *Bootstrapper {
				path := filepath.Join(t.TempDir(), "slip.zip")
				writeZip(t, path, map[string]string{"../evil.css": "x"})
				return &Bootstrapper{ArchivePath: path}
			},
			wantErr: ErrArchiveExtract,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			b := tt.setup(t, root)

			_, err := b.Bootstrap(context.Background(), root)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Bootstrap() error = %v, want %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrArchiveExtract) || errors.Is(err, ErrArchiveNotFound) {
				if fileutil.DirExists(filepath.Join(root, "highlight")) {
					t.Error("failed bootstrap left the target directory behind")
				}
			}
			if fileutil.FileExists(filepath.Join(filepath.Dir(root), "evil.css")) {
				t.Error("archive entry escaped the target")
			}
		})
	}
}

func TestBootstrap_CustomArchiveAndDirName(t *testing.T) {
	t.Parallel()

	archive := filepath.Join(t.TempDir(), "custom.zip")
	writeZip(t, archive, map[string]string{
		"styles/house.css": ".chroma { color: red }",
		"README.txt":       "assets",
	})

	root := t.TempDir()
	res, err := (&Bootstrapper{DirName: "hl", ArchivePath: archive}).Bootstrap(context.Background(), root)
	if err != nil {
		t.Fatalf("Bootstrap() unexpected error: %v", err)
	}
	if res.Files != 2 {
		t.Errorf("Files = %d, want 2", res.Files)
	}
	if res.Source != archive {
		t.Errorf("Source = %q, want %q", res.Source, archive)
	}
	if !fileutil.FileExists(filepath.Join(root, "hl", "styles", "house.css")) {
		t.Error("house.css not extracted under hl/")
	}
}

func TestBootstrap_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	_, err := (&Bootstrapper{}).Bootstrap(ctx, root)
	if err == nil {
		t.Fatal("Bootstrap() with cancelled context should fail")
	}
	if fileutil.DirExists(filepath.Join(root, "highlight")) {
		t.Error("cancelled bootstrap created the target")
	}
}
