// Package lock implements the advisory lock file guarding a mutating
// command's index and ref writes.
package lock

import (
	"os"
	"path/filepath"

	"github.com/arjunv/minigit/internal/common/errs"
)

const pkg = "lock"

// File represents a held lock on a repository root.
type File struct {
	path string
	file *os.File
}

// Acquire creates root/index.lock exclusively, failing if another
// process already holds it.
func Acquire(root string) (*File, error) {
	path := filepath.Join(root, "index.lock")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errs.New(pkg, errs.CodeInternal, "acquire", "another process holds the repository lock", err)
		}
		return nil, errs.New(pkg, errs.CodeInternal, "acquire", "failed to create lock file", err)
	}

	return &File{path: path, file: f}, nil
}

// Release closes and removes the lock file. Safe to call on every exit
// path, including after an error.
func (l *File) Release() error {
	if l == nil {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return errs.New(pkg, errs.CodeInternal, "release", "failed to close lock file", err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errs.New(pkg, errs.CodeInternal, "release", "failed to remove lock file", err)
	}
	return nil
}
