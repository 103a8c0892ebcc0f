// Package repo implements the repository handle: the root path and its
// derived subpaths, created at command entry and dropped at command
// exit rather than held in a process-wide global.
package repo

import (
	"os"
	"path/filepath"

	"github.com/arjunv/minigit/internal/common/errs"
)

const pkg = "repo"

// DirName is the name of the repository metadata directory.
const DirName = ".minigit"

// Repository is a handle onto an initialized `.minigit` root. It owns no
// open resources and may be freely copied.
type Repository struct {
	// WorkDir is the working directory the repository tracks.
	WorkDir string
	// Root is WorkDir/.minigit.
	Root string
}

// ObjectsDir is the object store's root directory.
func (r *Repository) ObjectsDir() string { return filepath.Join(r.Root, "objects") }

// RefsHeadsDir is the branch refs directory.
func (r *Repository) RefsHeadsDir() string { return filepath.Join(r.Root, "refs", "heads") }

// HeadPath is the HEAD file.
func (r *Repository) HeadPath() string { return filepath.Join(r.Root, "HEAD") }

// IndexPath is the staging-area file.
func (r *Repository) IndexPath() string { return filepath.Join(r.Root, "index") }

// ConfigPath is the repository-scoped config file.
func (r *Repository) ConfigPath() string { return filepath.Join(r.Root, "config") }

// Init creates a new repository rooted at workDir, failing with
// CodeAlreadyInit if one already exists there.
func Init(workDir string) (*Repository, error) {
	root := filepath.Join(workDir, DirName)

	if info, err := os.Stat(root); err == nil && info.IsDir() {
		return nil, errs.New(pkg, errs.CodeAlreadyInit, "init", "repository already initialized at "+root, nil)
	}

	for _, dir := range []string{
		root,
		filepath.Join(root, "objects"),
		filepath.Join(root, "refs", "heads"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.New(pkg, errs.CodeInternal, "init", "failed to create "+dir, err)
		}
	}

	return &Repository{WorkDir: workDir, Root: root}, nil
}

// Open locates the nearest `.minigit` directory, walking up from
// startDir.
func Open(startDir string) (*Repository, error) {
	dir := startDir
	for {
		root := filepath.Join(dir, DirName)
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return &Repository{WorkDir: dir, Root: root}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, errs.New(pkg, errs.CodeNotARepository, "open", "not a minigit repository (or any parent up to the root)", nil)
		}
		dir = parent
	}
}
