package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pablasso/plankit/internal/lattice"
)

const (
	// DefaultDir is the plan directory relative to the working directory.
	DefaultDir = "plan"
	// DefaultTemplate is the reserved template file name, never scanned.
	DefaultTemplate = "template.yaml"
)

var (
	// ErrSourceMissing is returned when the plan to copy from is absent.
	ErrSourceMissing = errors.New("source plan file does not exist")
	// ErrTargetExists is returned instead of overwriting a plan file.
	ErrTargetExists = errors.New("target plan file already exists")
)

// VersionFile is a plan file whose name stem is a version.
type VersionFile struct {
	Version lattice.Version
	Path    string
}

// Repository reads and writes plan files in one directory.
type Repository struct {
	dir      string
	template string
}

// NewRepository returns a repository rooted at dir. An empty template name
// falls back to DefaultTemplate.
func NewRepository(dir, template string) *Repository {
	if dir == "" {
		dir = DefaultDir
	}
	if template == "" {
		template = DefaultTemplate
	}
	return &Repository{dir: dir, template: template}
}

// Dir returns the plan directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Template returns the reserved template file name.
func (r *Repository) Template() string {
	return r.template
}

// Exists reports whether the plan directory exists.
func (r *Repository) Exists() bool {
	info, err := os.Stat(r.dir)
	return err == nil && info.IsDir()
}

// IsPlanFile reports whether name is a YAML file other than the template.
func (r *Repository) IsPlanFile(name string) bool {
	base := filepath.Base(name)
	if base == r.template {
		return false
	}
	return strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml")
}

// Files lists every plan file in the directory, sorted by name.
func (r *Repository) Files() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !r.IsPlanFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(r.dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Resolve maps a command-line argument to a path: absolute paths are kept,
// relative ones are taken relative to the plan directory.
func (r *Repository) Resolve(arg string) string {
	if filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(r.dir, arg)
}

// Load reads and parses one plan file.
func (r *Repository) Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return f, nil
}

// Versions returns the plan files named <major>.<minor>.<patch>.yaml (or
// .yml), highest version first. Other plan files are ignored.
func (r *Repository) Versions() ([]VersionFile, error) {
	files, err := r.Files()
	if err != nil {
		return nil, err
	}

	var versions []VersionFile
	for _, path := range files {
		stem := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
		v, err := lattice.Parse(stem)
		if err != nil {
			continue
		}
		versions = append(versions, VersionFile{Version: v, Path: path})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return lattice.CompareDescending(versions[i].Version, versions[j].Version) < 0
	})
	return versions, nil
}

// Current returns the highest-versioned plan file. ok is false when the
// directory holds no versioned plan.
func (r *Repository) Current() (current VersionFile, ok bool, err error) {
	versions, err := r.Versions()
	if err != nil {
		return VersionFile{}, false, err
	}
	candidates := make([]lattice.Version, len(versions))
	for i, vf := range versions {
		candidates[i] = vf.Version
	}
	latest, ok := lattice.Latest(candidates)
	if !ok {
		return VersionFile{}, false, nil
	}
	for _, vf := range versions {
		if vf.Version.Compare(latest) == 0 {
			return vf, true, nil
		}
	}
	return VersionFile{}, false, nil
}

// PathFor returns the canonical path of the plan file for v.
func (r *Repository) PathFor(v lattice.Version) string {
	return filepath.Join(r.dir, v.String()+".yaml")
}

// HasVersion reports whether a .yaml or .yml file exists for v.
func (r *Repository) HasVersion(v lattice.Version) bool {
	for _, ext := range []string{".yaml", ".yml"} {
		if _, err := os.Stat(filepath.Join(r.dir, v.String()+ext)); err == nil {
			return true
		}
	}
	return false
}

// Create writes data to path. It never overwrites: an existing file yields
// ErrTargetExists.
func (r *Repository) Create(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrTargetExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
