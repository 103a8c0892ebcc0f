package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arjunv/minigit/internal/repo"
)

// TestHelper provides utilities for CLI command testing.
type TestHelper struct {
	t        *testing.T
	tempDir  string
	RepoPath string
}

// NewTestHelper creates a new test helper with automatic cleanup.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	tempDir := t.TempDir()
	return &TestHelper{t: t, tempDir: tempDir, RepoPath: tempDir}
}

// InitRepo initializes a test repository by running the `init` command,
// so HEAD, config, and the index exist just as after `minigit init`.
func (th *TestHelper) InitRepo() *repo.Repository {
	th.t.Helper()
	cmd := newInitCmd()
	cmd.SetArgs([]string{th.tempDir})
	if err := cmd.Execute(); err != nil {
		th.t.Fatalf("failed to initialize repo: %v", err)
	}
	r, err := repo.Open(th.tempDir)
	if err != nil {
		th.t.Fatalf("failed to open repo: %v", err)
	}
	return r
}

// WriteFile creates a test file with content, under the repository's
// working directory.
func (th *TestHelper) WriteFile(name, content string) string {
	th.t.Helper()
	filePath := filepath.Join(th.tempDir, name)

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		th.t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		th.t.Fatalf("failed to write file %s: %v", filePath, err)
	}
	return filePath
}

// Chdir changes to the test directory, since the command façade locates
// its repository via the process's current working directory.
func (th *TestHelper) Chdir() {
	th.t.Helper()
	if err := os.Chdir(th.tempDir); err != nil {
		th.t.Fatalf("failed to chdir to %s: %v", th.tempDir, err)
	}
}
