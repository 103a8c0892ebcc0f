// Package refs implements the Reference Store: HEAD as a tagged
// Attached/Detached/Unborn state, and named branch pointers under
// refs/heads/.
package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/objects"
)

const pkg = "refs"

const symbolicPrefix = "ref: refs/heads/"

// HeadState is the tagged variant HEAD can be in: a sum type rather than
// an overloaded string.
type HeadState struct {
	// Attached is true when HEAD points at a branch by name.
	Attached bool
	// Branch is the branch name when Attached is true.
	Branch string
	// Commit is the commit fingerprint when Attached is false and Unborn
	// is false (the Detached case).
	Commit objects.Fingerprint
	// Unborn is true when HEAD is attached to a branch whose ref file is
	// still empty, the state between init and the first commit.
	Unborn bool
}

// Store is the Reference Store, rooted at a repository's metadata
// directory (the directory containing HEAD and refs/heads/).
type Store struct {
	root string // e.g. ".minigit"
}

// New creates a reference Store rooted at root.
func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) headPath() string     { return filepath.Join(s.root, "HEAD") }
func (s *Store) branchPath(name string) string {
	return filepath.Join(s.root, "refs", "heads", name)
}

// InitHead writes the initial HEAD file, attaching it to defaultBranch
// with that branch's ref file left empty, the Unborn state.
func (s *Store) InitHead(defaultBranch string) error {
	if err := os.MkdirAll(filepath.Join(s.root, "refs", "heads"), 0o755); err != nil {
		return errs.New(pkg, errs.CodeInternal, "init", "failed to create refs/heads", err)
	}
	if err := writeFile(s.headPath(), symbolicPrefix+defaultBranch+"\n"); err != nil {
		return errs.New(pkg, errs.CodeInternal, "init", "failed to write HEAD", err)
	}
	if err := writeFile(s.branchPath(defaultBranch), ""); err != nil {
		return errs.New(pkg, errs.CodeInternal, "init", "failed to create default branch ref", err)
	}
	return nil
}

// HeadRead reads HEAD's current state.
func (s *Store) HeadRead() (HeadState, error) {
	content, err := os.ReadFile(s.headPath())
	if err != nil {
		return HeadState{}, errs.New(pkg, errs.CodeInternal, "head_read", "failed to read HEAD", err)
	}

	line := strings.TrimSpace(string(content))
	if branch, ok := strings.CutPrefix(line, symbolicPrefix); ok {
		commitFp, err := s.BranchRead(branch)
		if err != nil {
			return HeadState{}, err
		}
		if commitFp == "" {
			return HeadState{Attached: true, Branch: branch, Unborn: true}, nil
		}
		return HeadState{Attached: true, Branch: branch}, nil
	}

	fp, err := objects.ParseFingerprint(line)
	if err != nil {
		return HeadState{}, errs.New(pkg, errs.CodeMalformedObject, "head_read", "HEAD does not contain a valid ref or fingerprint", err)
	}
	return HeadState{Commit: fp}, nil
}

// HeadWriteAttached points HEAD at branch by name.
func (s *Store) HeadWriteAttached(branch string) error {
	if err := writeFile(s.headPath(), symbolicPrefix+branch+"\n"); err != nil {
		return errs.New(pkg, errs.CodeInternal, "head_write_attached", "failed to write HEAD", err)
	}
	return nil
}

// HeadWriteDetached points HEAD directly at a commit fingerprint.
func (s *Store) HeadWriteDetached(fp objects.Fingerprint) error {
	if err := writeFile(s.headPath(), fp.String()+"\n"); err != nil {
		return errs.New(pkg, errs.CodeInternal, "head_write_detached", "failed to write HEAD", err)
	}
	return nil
}

// BranchRead reads a branch's target fingerprint, returning "" if the
// branch's ref file is empty (the Unborn case) or errors if the branch
// does not exist at all.
func (s *Store) BranchRead(name string) (objects.Fingerprint, error) {
	content, err := os.ReadFile(s.branchPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.New(pkg, errs.CodeUnknownTarget, "branch_read", fmt.Sprintf("branch %q does not exist", name), nil)
		}
		return "", errs.New(pkg, errs.CodeInternal, "branch_read", "failed to read branch ref", err)
	}

	line := strings.TrimSpace(string(content))
	if line == "" {
		return "", nil
	}
	fp, err := objects.ParseFingerprint(line)
	if err != nil {
		return "", errs.New(pkg, errs.CodeMalformedObject, "branch_read", fmt.Sprintf("branch %q ref is malformed", name), err)
	}
	return fp, nil
}

// BranchWrite points branch name at commit fp, creating it if absent.
func (s *Store) BranchWrite(name string, fp objects.Fingerprint) error {
	if err := os.MkdirAll(filepath.Dir(s.branchPath(name)), 0o755); err != nil {
		return errs.New(pkg, errs.CodeInternal, "branch_write", "failed to create branch directory", err)
	}
	if err := writeFile(s.branchPath(name), fp.String()+"\n"); err != nil {
		return errs.New(pkg, errs.CodeInternal, "branch_write", "failed to write branch ref", err)
	}
	return nil
}

// BranchExists reports whether a ref file for name exists at all
// (independent of whether it is still empty).
func (s *Store) BranchExists(name string) (bool, error) {
	_, err := os.Stat(s.branchPath(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errs.New(pkg, errs.CodeInternal, "branch_exists", "failed to stat branch ref", err)
}

// ListBranches returns the names of every branch ref, sorted, for the
// `branch` façade command's listing.
func (s *Store) ListBranches() ([]string, error) {
	dir := filepath.Join(s.root, "refs", "heads")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.New(pkg, errs.CodeInternal, "list_branches", "failed to read refs/heads", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ResolveHeadCommit combines HeadRead with a branch lookup, returning
// ("", nil) only in the Unborn state.
func (s *Store) ResolveHeadCommit() (objects.Fingerprint, error) {
	state, err := s.HeadRead()
	if err != nil {
		return "", err
	}
	if state.Unborn {
		return "", nil
	}
	if state.Attached {
		return s.BranchRead(state.Branch)
	}
	return state.Commit, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
