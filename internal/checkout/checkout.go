// Package checkout implements the Checkout Engine: target resolution
// and working-tree materialization, using errgroup to fan out file
// writes.
package checkout

import (
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

const pkg = "checkout"

// Engine resolves checkout targets and materializes commits into a
// working directory.
type Engine struct {
	store   *store.Store
	refs    *refs.Store
	workDir string
}

// New creates a checkout Engine rooted at workDir.
func New(s *store.Store, r *refs.Store, workDir string) *Engine {
	return &Engine{store: s, refs: r, workDir: workDir}
}

// Target is a resolved checkout destination.
type Target struct {
	Branch     string // set when the target named an existing branch
	Commit     objects.Fingerprint
	IsBranch   bool
	IsDetached bool
}

// Resolve interprets name as an existing branch name first, then as an
// exact-length commit fingerprint present in the object store,
// otherwise returns CodeUnknownTarget.
func (e *Engine) Resolve(name string) (*Target, error) {
	exists, err := e.refs.BranchExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		fp, err := e.refs.BranchRead(name)
		if err != nil {
			return nil, err
		}
		return &Target{Branch: name, Commit: fp, IsBranch: true}, nil
	}

	if objects.LooksLikeFingerprint(name) {
		fp := objects.Fingerprint(name)
		has, err := e.store.Has(fp)
		if err != nil {
			return nil, err
		}
		if has {
			return &Target{Commit: fp, IsDetached: true}, nil
		}
	}

	return nil, errs.New(pkg, errs.CodeUnknownTarget, "resolve", "no branch or commit matches "+name, nil)
}

// Checkout resolves target, materializes its commit into the working
// tree, and updates HEAD accordingly. fromCommit is the tree currently
// checked out (the "" fingerprint if Unborn), used to decide which
// tracked paths to remove under the "clean and restore" policy.
func (e *Engine) Checkout(name string, fromCommit objects.Fingerprint) (*Target, error) {
	target, err := e.Resolve(name)
	if err != nil {
		return nil, err
	}

	if err := e.materialize(fromCommit, target.Commit); err != nil {
		return nil, err
	}

	if target.IsBranch {
		if err := e.refs.HeadWriteAttached(target.Branch); err != nil {
			return nil, err
		}
	} else {
		if err := e.refs.HeadWriteDetached(target.Commit); err != nil {
			return nil, err
		}
	}

	return target, nil
}

// materialize removes tracked paths absent from the destination tree
// and writes every path in the destination tree, concurrently.
func (e *Engine) materialize(fromCommit, toCommit objects.Fingerprint) error {
	fromTree, err := e.treeFor(fromCommit)
	if err != nil {
		return err
	}
	toTree, err := e.treeFor(toCommit)
	if err != nil {
		return err
	}
	return e.MaterializeTree(fromTree, toTree)
}

func (e *Engine) treeFor(fp objects.Fingerprint) (map[string]objects.Fingerprint, error) {
	if fp == "" {
		return nil, nil
	}
	c, err := e.store.GetCommit(fp)
	if err != nil {
		return nil, err
	}
	return c.Tree, nil
}

// MaterializeTree removes working-tree paths present in fromTree but
// absent from toTree, then writes every path in toTree. Callers that
// build a tree in memory rather than from a stored commit (the Merge
// Engine's reconciled tree, before it is known whether the merge will
// produce a commit) use this directly instead of going through a
// commit fingerprint.
func (e *Engine) MaterializeTree(fromTree, toTree map[string]objects.Fingerprint) error {
	for path := range fromTree {
		if _, stillTracked := toTree[path]; !stillTracked {
			full := filepath.Join(e.workDir, path)
			if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
				return errs.New(pkg, errs.CodeInternal, "materialize", "failed to remove "+path, err)
			}
		}
	}

	return e.WriteTree(toTree)
}

// WriteTree writes every (path, fingerprint) pair in tree to the working
// directory concurrently, bounded by the number of entries.
func (e *Engine) WriteTree(tree map[string]objects.Fingerprint) error {
	g := new(errgroup.Group)

	for path, fp := range tree {
		path, fp := path, fp
		g.Go(func() error {
			data, err := e.store.GetBlob(fp)
			if err != nil {
				return err
			}

			full := filepath.Join(e.workDir, path)
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return errs.New(pkg, errs.CodeInternal, "write_tree", "failed to create directory for "+path, err)
			}
			if err := os.WriteFile(full, data, 0o644); err != nil {
				return errs.New(pkg, errs.CodeInternal, "write_tree", "failed to write "+path, err)
			}
			return nil
		})
	}

	return g.Wait()
}
