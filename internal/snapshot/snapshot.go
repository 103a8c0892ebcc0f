// Package snapshot implements the Snapshot Engine: turning the current
// index and HEAD into a new commit, using a flat tree-map commit format
// instead of a tree object.
package snapshot

import (
	"time"

	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

const pkg = "snapshot"

// Engine builds commits from an index and the current reference state.
type Engine struct {
	store *store.Store
	refs  *refs.Store
}

// New creates a snapshot Engine over the given object and reference
// stores.
func New(s *store.Store, r *refs.Store) *Engine {
	return &Engine{store: s, refs: r}
}

// Result reports the outcome of a successful Commit call.
type Result struct {
	Commit      *objects.Commit
	Fingerprint objects.Fingerprint
}

// Commit builds a commit from idx and message, fails with CodeEmptyIndex
// if idx has no entries, and with CodeDetachedCommit if HEAD is
// detached (commit on a detached HEAD is forbidden). On success it
// points the branch HEAD is attached to at the new commit (in the
// Unborn case, that branch's first commit), clears idx in memory, and
// returns the new commit.
func (e *Engine) Commit(idx *index.Index, message string, author objects.Identity) (*Result, error) {
	if idx.Len() == 0 {
		return nil, errs.New(pkg, errs.CodeEmptyIndex, "commit", "nothing staged for commit", nil)
	}

	head, err := e.refs.HeadRead()
	if err != nil {
		return nil, err
	}
	if !head.Attached && !head.Unborn {
		return nil, errs.New(pkg, errs.CodeDetachedCommit, "commit", "cannot commit while HEAD is detached", nil)
	}

	var parents []objects.Fingerprint
	if !head.Unborn {
		parentFp, err := e.refs.BranchRead(head.Branch)
		if err != nil {
			return nil, err
		}
		parents = []objects.Fingerprint{parentFp}
	}

	commit := &objects.Commit{
		Tree:      idx.Snapshot(),
		Parents:   parents,
		Author:    author,
		Committer: author,
		Timestamp: time.Now().Local().Format(objects.TimeLayout),
		Message:   message,
	}

	fp, err := e.store.PutCommit(commit)
	if err != nil {
		return nil, err
	}

	if err := e.refs.BranchWrite(head.Branch, fp); err != nil {
		return nil, err
	}

	idx.Clear()

	return &Result{Commit: commit, Fingerprint: fp}, nil
}
