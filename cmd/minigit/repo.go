package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arjunv/minigit/internal/config"
	"github.com/arjunv/minigit/internal/lock"
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/repo"
)

// findRepository locates the nearest .minigit directory starting from
// the current working directory.
func findRepository() (*repo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return repo.Open(cwd)
}

// loadIdentity reads the repository's config file and returns the
// author/committer identity placeholder commits are stamped with.
func loadIdentity(r *repo.Repository) (objects.Identity, error) {
	cfg, err := config.Load(r.ConfigPath())
	if err != nil {
		return objects.Identity{}, err
	}
	return objects.Identity{Name: cfg.UserName, Email: cfg.UserEmail}, nil
}

// acquireLock takes the advisory repository lock for the duration of a
// mutating command, to be released with a deferred call at the
// command's entry point.
func acquireLock(r *repo.Repository) (*lock.File, error) {
	return lock.Acquire(r.Root)
}

// relPath converts an absolute or cwd-relative path argument into a
// path relative to the repository's working directory, the form stored
// in the index and in commit tree maps.
func relPath(r *repo.Repository, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	rel, err := filepath.Rel(r.WorkDir, abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path relative to repository: %w", err)
	}
	return filepath.ToSlash(rel), nil
}
