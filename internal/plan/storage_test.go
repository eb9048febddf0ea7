package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pablasso/plankit/internal/lattice"
	"github.com/pablasso/plankit/internal/testutil"
)

func TestRepository_Files(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plan")
	testutil.WritePlan(t, dir, "1.0.0.yaml", "version: 1.0.0\n")
	testutil.WritePlan(t, dir, "0.9.0.yml", "version: 0.9.0\n")
	testutil.WritePlan(t, dir, "template.yaml", "version: 0.0.0\n")
	testutil.WritePlan(t, dir, "notes.md", "# notes\n")
	os.MkdirAll(filepath.Join(dir, "archive.yaml"), 0755)

	repo := NewRepository(dir, "")
	files, err := repo.Files()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{filepath.Join(dir, "0.9.0.yml"), filepath.Join(dir, "1.0.0.yaml")}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d]: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestRepository_FilesMissingDir(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing"), "")
	if repo.Exists() {
		t.Error("Exists should be false")
	}
	if _, err := repo.Files(); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRepository_Current(t *testing.T) {
	t.Run("highest by lattice order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"1.2.3.yaml", "1.10.0.yaml", "1.9.0.yml", "draft.yaml", "2.0.yaml"} {
			testutil.WritePlan(t, dir, name, "version: x\n")
		}

		repo := NewRepository(dir, "")
		current, ok, err := repo.Current()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected a current version")
		}
		if current.Version.String() != "1.10.0" {
			t.Errorf("got %s, want 1.10.0", current.Version)
		}
		if current.Path != filepath.Join(dir, "1.10.0.yaml") {
			t.Errorf("path: got %s", current.Path)
		}
	})

	t.Run("no versioned files", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WritePlan(t, dir, "template.yaml", "version: 0.0.0\n")

		_, ok, err := NewRepository(dir, "").Current()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected no current version")
		}
	})
}

func TestRepository_Resolve(t *testing.T) {
	repo := NewRepository("plan", "")
	if got := repo.Resolve("1.0.0.yaml"); got != filepath.Join("plan", "1.0.0.yaml") {
		t.Errorf("relative: got %q", got)
	}
	abs := filepath.Join(t.TempDir(), "x.yaml")
	if got := repo.Resolve(abs); got != abs {
		t.Errorf("absolute: got %q", got)
	}
}

func TestRepository_Load(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WritePlan(t, dir, "1.2.0.yaml", testutil.SamplePlan)
	bad := testutil.WritePlan(t, dir, "1.3.0.yaml", "version: [\n")
	repo := NewRepository(dir, "")

	f, err := repo.Load(good)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Doc.Version != "1.2.0" {
		t.Errorf("Version: got %q", f.Doc.Version)
	}

	_, err = repo.Load(bad)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Path != bad {
		t.Errorf("ParseError.Path: got %q, want %q", pe.Path, bad)
	}

	_, err = repo.Load(filepath.Join(dir, "9.9.9.yaml"))
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("expected ErrSourceMissing, got %v", err)
	}
}

func TestRepository_CreateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir, "")
	v, _ := lattice.Parse("1.0.0")
	path := repo.PathFor(v)

	if repo.HasVersion(v) {
		t.Fatal("version should not exist yet")
	}
	if err := repo.Create(path, []byte("version: 1.0.0\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.HasVersion(v) {
		t.Error("version should exist after create")
	}

	err := repo.Create(path, []byte("version: other\n"))
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "version: 1.0.0\n" {
		t.Errorf("file was overwritten: %q", data)
	}
}

func TestRepository_HasVersionYml(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePlan(t, dir, "2.0.0.yml", "version: 2.0.0\n")
	v, _ := lattice.Parse("2.0.0")
	if !NewRepository(dir, "").HasVersion(v) {
		t.Error("expected .yml file to count")
	}
}
