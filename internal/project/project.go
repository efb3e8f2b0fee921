// Package project resolves project names to storage roots and owns the
// per-project directory layout.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// Subdirectories created under every project root.
var layout = []string{"findings", "logs", "notes", "crawl_outputs"}

// namePattern restricts project names to filesystem-safe identifiers.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Project is the handle for one engagement's storage root. All collection
// operations take an explicit Project; there is no ambient "current
// project" state.
type Project struct {
	Name string
	Root string
}

// Create makes a new project directory with the standard layout and returns
// its handle. Returns types.ErrProjectExists if the directory is already
// present and types.ErrInvalidProjectName for unusable names.
func Create(baseDir, name string) (*Project, error) {
	if !namePattern.MatchString(name) {
		return nil, types.ErrInvalidProjectName
	}
	root := filepath.Join(baseDir, name)
	if _, err := os.Stat(root); err == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrProjectExists, name)
	}
	for _, sub := range layout {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating project layout: %w", err)
		}
	}
	return &Project{Name: name, Root: root}, nil
}

// Open returns the handle for an existing project. Returns
// types.ErrProjectNotFound if the project directory does not exist.
func Open(baseDir, name string) (*Project, error) {
	if !namePattern.MatchString(name) {
		return nil, types.ErrInvalidProjectName
	}
	root := filepath.Join(baseDir, name)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", types.ErrProjectNotFound, name)
	}
	return &Project{Name: name, Root: root}, nil
}

// List returns the names of all projects under baseDir, sorted. A missing
// base directory yields an empty list, not an error.
func List(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading base dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && namePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Path joins the given elements onto the project root.
func (p *Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Root}, elem...)...)
}
