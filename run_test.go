package docgrinder

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alnah/go-docgrinder/internal/fileutil"
)

func TestRun_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   func(t *testing.T, parent string) string
		wantErr error
	}{
		{
			name:    "empty argument",
			input:   func(*testing.T, string) string { return "" },
			wantErr: ErrWrongArgs,
		},
		{
			name:    "missing path",
			input:   func(_ *testing.T, parent string) string { return filepath.Join(parent, "nope") },
			wantErr: ErrNotDirectory,
		},
		{
			name: "regular file",
			input: func(t *testing.T, parent string) string {
				file := filepath.Join(parent, "file.md")
				if err := os.WriteFile(file, []byte("# x"), 0o600); err != nil {
					t.Fatal(err)
				}
				return file
			},
			wantErr: ErrNotDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent := t.TempDir()
			input := tt.input(t, parent)
			before := listTree(t, parent)

			_, err := Run(context.Background(), RunConfig{InputDir: input, Bootstrap: true}, withRenderer(&fakeRenderer{}))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}

			after := listTree(t, parent)
			if !reflect.DeepEqual(before, after) {
				t.Errorf("Run() mutated the filesystem: before %v, after %v", before, after)
			}
		})
	}
}

func TestRun_SymlinkedInput(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	realDir := filepath.Join(parent, "real")
	writeTree(t, realDir, map[string]string{"index.md": "# Home\n"})
	link := filepath.Join(parent, "docs")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	report, err := Run(context.Background(), RunConfig{InputDir: link, Bootstrap: true}, withRenderer(&fakeRenderer{}))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if report.Artifacts() != 2 {
		t.Errorf("Artifacts() = %d, want 2", report.Artifacts())
	}

	dist := filepath.Join(parent, "dist")
	if report.OutputDir != dist {
		t.Errorf("OutputDir = %q, want %q", report.OutputDir, dist)
	}
	for _, name := range []string{"index.html", "index.pdf"} {
		if !fileutil.FileExists(filepath.Join(dist, name)) {
			t.Errorf("%s not written", name)
		}
	}
}

// listTree returns every path under dir, relative and slash-separated.
func listTree(t *testing.T, dir string) []string {
	t.Helper()

	var paths []string
	err := filepath.WalkDir(dir, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return paths
}

func TestRun_Full(t *testing.T) {
	t.Parallel()

	root := docTree(t)
	fake := &fakeRenderer{}

	report, err := Run(context.Background(), RunConfig{
		InputDir:   root,
		Bootstrap:  true,
		Theme:      "github",
		PrintTheme: "nord",
	}, withRenderer(fake))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if report.Bootstrap == nil || report.Bootstrap.Skipped {
		t.Errorf("Bootstrap = %+v, want extraction", report.Bootstrap)
	}
	if len(report.Conversions) != 2 ||
		report.Conversions[0].Backend != BackendHTML5 ||
		report.Conversions[1].Backend != BackendPDF {
		t.Fatalf("conversions out of order: %+v", report.Conversions)
	}
	if report.Artifacts() != 4 {
		t.Errorf("Artifacts() = %d, want 4", report.Artifacts())
	}
	if !fake.closed {
		t.Error("Run() did not close the renderer")
	}

	dist := filepath.Join(filepath.Dir(root), "dist")
	if report.OutputDir != dist {
		t.Errorf("OutputDir = %q, want %q", report.OutputDir, dist)
	}
	for _, rel := range []string{
		"index.html",
		"index.pdf",
		"guide/intro.html",
		"guide/intro.pdf",
		"highlight/styles/github.css",
	} {
		if !fileutil.FileExists(filepath.Join(dist, filepath.FromSlash(rel))) {
			t.Errorf("%s not written", rel)
		}
	}
	if !fileutil.DirExists(filepath.Join(root, "highlight")) {
		t.Error("highlight assets not bootstrapped into the input tree")
	}
}

func TestRun_RerunProducesIdenticalTree(t *testing.T) {
	t.Parallel()

	root := docTree(t)
	dist := filepath.Join(filepath.Dir(root), "dist")
	cfg := RunConfig{InputDir: root, Bootstrap: true}

	if _, err := Run(context.Background(), cfg, withRenderer(&fakeRenderer{})); err != nil {
		t.Fatalf("first Run() unexpected error: %v", err)
	}
	first := snapshotTree(t, dist)

	report, err := Run(context.Background(), cfg, withRenderer(&fakeRenderer{}))
	if err != nil {
		t.Fatalf("second Run() unexpected error: %v", err)
	}
	if !report.Bootstrap.Skipped {
		t.Error("second run re-extracted highlight assets")
	}

	second := snapshotTree(t, dist)
	if len(first) != len(second) {
		t.Fatalf("file count changed: %d then %d", len(first), len(second))
	}
	for rel, data := range first {
		if second[rel] != data {
			t.Errorf("%s differs between runs", rel)
		}
	}
}

// snapshotTree maps every regular file under dir to its contents.
func snapshotTree(t *testing.T, dir string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func TestRun_BootstrapDisabled(t *testing.T) {
	t.Parallel()

	root := docTree(t)
	report, err := Run(context.Background(), RunConfig{InputDir: root}, withRenderer(&fakeRenderer{}))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if report.Bootstrap != nil {
		t.Error("Bootstrap should be nil when disabled")
	}
	if fileutil.DirExists(filepath.Join(root, "highlight")) {
		t.Error("highlight directory created with bootstrap disabled")
	}
}

func TestRun_BlockedHighlightStopsBeforeConversion(t *testing.T) {
	t.Parallel()

	root := docTree(t)
	if err := os.WriteFile(filepath.Join(root, "highlight"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Run(context.Background(), RunConfig{InputDir: root, Bootstrap: true}, withRenderer(&fakeRenderer{}))
	if !errors.Is(err, ErrHighlightBlocked) {
		t.Fatalf("Run() error = %v, want ErrHighlightBlocked", err)
	}
	if fileutil.DirExists(filepath.Join(filepath.Dir(root), "dist")) {
		t.Error("conversion ran despite blocked bootstrap")
	}
}

func TestRun_ConversionFailureIsWrapped(t *testing.T) {
	t.Parallel()

	root := docTree(t)
	_, err := Run(context.Background(), RunConfig{InputDir: root}, withRenderer(&fakeRenderer{err: ErrPDFGeneration}))
	if !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("Run() error = %v, want ErrPDFGeneration", err)
	}
}
