// Package merge implements the Merge Engine: three-way reconciliation
// over two branch tips and their lowest common ancestor, with textual
// conflict marking, built in the idiom of internal/graph's LCA and
// internal/checkout's materialization.
package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arjunv/minigit/internal/checkout"
	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/graph"
	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

const pkg = "merge"

const (
	markerOurs   = "<<<<<<< OURS"
	markerMiddle = "======="
	markerTheirs = ">>>>>>> THEIRS"
)

// Engine performs three-way merges between the current branch and a
// named target branch.
type Engine struct {
	store    *store.Store
	refs     *refs.Store
	graph    *graph.Walker
	checkout *checkout.Engine
	workDir  string
}

// New creates a merge Engine over the given stores, rooted at workDir
// for conflict-marker materialization.
func New(s *store.Store, r *refs.Store, workDir string) *Engine {
	return &Engine{
		store:    s,
		refs:     r,
		graph:    graph.New(s),
		checkout: checkout.New(s, r, workDir),
		workDir:  workDir,
	}
}

// Result reports the outcome of a merge attempt.
type Result struct {
	UpToDate    bool
	Conflicts   []string
	Commit      *objects.Commit
	Fingerprint objects.Fingerprint
}

// Merge merges branch into the current branch. currentBranch is the
// branch name HEAD is attached to (commit on Detached HEAD is forbidden
// by the Snapshot Engine, and merge shares that precondition since it
// may produce a commit).
func (e *Engine) Merge(currentBranch string, branch string, author objects.Identity) (*Result, error) {
	cFp, err := e.refs.BranchRead(currentBranch)
	if err != nil {
		return nil, err
	}
	if cFp == "" {
		return nil, errs.New(pkg, errs.CodeNoCommits, "merge", "current branch has no commits", nil)
	}

	exists, err := e.refs.BranchExists(branch)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.New(pkg, errs.CodeUnknownTarget, "merge", "branch "+branch+" does not exist", nil)
	}
	tFp, err := e.refs.BranchRead(branch)
	if err != nil {
		return nil, err
	}
	if tFp == "" {
		return nil, errs.New(pkg, errs.CodeNoCommits, "merge", "branch "+branch+" has no commits", nil)
	}

	if tFp == cFp {
		return &Result{UpToDate: true}, nil
	}

	lFp, err := e.graph.LowestCommonAncestor(cFp, tFp)
	if err != nil {
		return nil, err
	}
	if lFp == "" {
		return nil, errs.New(pkg, errs.CodeNoCommonAncestor, "merge", "branches share no common ancestor", nil)
	}

	cCommit, err := e.store.GetCommit(cFp)
	if err != nil {
		return nil, err
	}
	tCommit, err := e.store.GetCommit(tFp)
	if err != nil {
		return nil, err
	}
	lCommit, err := e.store.GetCommit(lFp)
	if err != nil {
		return nil, err
	}

	merged, conflicts, err := e.reconcile(lCommit.Tree, cCommit.Tree, tCommit.Tree)
	if err != nil {
		return nil, err
	}

	// Any path that appeared in the base, ours, or theirs tree is within
	// this merge's scope for working-tree cleanup, even if one side's own
	// tip had already stopped tracking it: the path may still be sitting
	// on disk from an earlier checkout.
	tracked := unionTreeKeys(lCommit.Tree, cCommit.Tree, tCommit.Tree)

	if len(conflicts) > 0 {
		if err := e.checkout.MaterializeTree(tracked, merged); err != nil {
			return nil, err
		}
		if err := e.writeConflictMarkers(conflicts); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(conflicts))
		for path := range conflicts {
			names = append(names, path)
		}
		return &Result{Conflicts: names}, errs.New(pkg, errs.CodeMergeConflict, "merge", fmt.Sprintf("%d conflicting path(s)", len(conflicts)), nil)
	}

	commit := &objects.Commit{
		Tree:      merged,
		Parents:   []objects.Fingerprint{cFp, tFp},
		Author:    author,
		Committer: author,
		Timestamp: time.Now().Local().Format(objects.TimeLayout),
		Message:   fmt.Sprintf("Merge branch '%s' into %s", branch, currentBranch),
	}

	fp, err := e.store.PutCommit(commit)
	if err != nil {
		return nil, err
	}
	if err := e.refs.BranchWrite(currentBranch, fp); err != nil {
		return nil, err
	}
	if err := e.checkout.MaterializeTree(tracked, merged); err != nil {
		return nil, err
	}

	return &Result{Commit: commit, Fingerprint: fp}, nil
}

// unionTreeKeys collects every path present in any of trees. Values are
// not meaningful; callers use the result only to test path membership.
func unionTreeKeys(trees ...map[string]objects.Fingerprint) map[string]objects.Fingerprint {
	out := make(map[string]objects.Fingerprint)
	for _, tree := range trees {
		for p := range tree {
			out[p] = ""
		}
	}
	return out
}

// conflictSides holds the ours/theirs blob fingerprints for a
// conflicting path, either of which may be absent (⊥).
type conflictSides struct {
	ours   objects.Fingerprint
	theirs objects.Fingerprint
}

// reconcile applies the three-way reconciliation table over the union
// of paths from base, ours, and theirs.
func (e *Engine) reconcile(base, ours, theirs map[string]objects.Fingerprint) (map[string]objects.Fingerprint, map[string]conflictSides, error) {
	paths := make(map[string]bool)
	for p := range base {
		paths[p] = true
	}
	for p := range ours {
		paths[p] = true
	}
	for p := range theirs {
		paths[p] = true
	}

	merged := make(map[string]objects.Fingerprint)
	conflicts := make(map[string]conflictSides)

	for p := range paths {
		l, lOK := base[p]
		c, cOK := ours[p]
		t, tOK := theirs[p]

		switch {
		case !lOK && !cOK && tOK: // ⊥ ⊥ x
			merged[p] = t
		case !lOK && cOK && !tOK: // ⊥ x ⊥
			merged[p] = c
		case !lOK && cOK && tOK && c == t: // ⊥ x x
			merged[p] = c
		case !lOK && cOK && tOK && c != t: // ⊥ x y
			conflicts[p] = conflictSides{ours: c, theirs: t}
		case lOK && cOK && tOK && l == c && c == t: // x x x
			merged[p] = c
		case lOK && cOK && tOK && l == c && c != t: // x x y
			merged[p] = t
		case lOK && cOK && tOK && l == t && c != t: // x y x
			merged[p] = c
		case lOK && cOK && tOK && c == t && l != c: // x y y, same change both sides
			merged[p] = c
		case lOK && !cOK && tOK && l == t: // x ⊥ x
			// deleted on our side, unchanged on theirs: stays deleted
		case lOK && cOK && !tOK && l == c: // x x ⊥
			// deleted on their side, unchanged on ours: stays deleted
		case lOK && !cOK && !tOK: // x ⊥ ⊥
			// deleted independently on both sides: stays deleted
		case lOK && !cOK && tOK && l != t: // x ⊥ y, y != x
			conflicts[p] = conflictSides{ours: "", theirs: t}
		case lOK && cOK && !tOK && l != c: // x y ⊥, y != x
			conflicts[p] = conflictSides{ours: c, theirs: ""}
		case lOK && cOK && tOK && l != c && l != t && c != t: // x y z, all different
			conflicts[p] = conflictSides{ours: c, theirs: t}
		default:
			return nil, nil, errs.New(pkg, errs.CodeInternal, "reconcile", fmt.Sprintf("unhandled reconciliation state for path %s", p), nil)
		}
	}

	return merged, conflicts, nil
}

// writeConflictMarkers materializes each conflicting path with textual
// OURS/THEIRS markers.
func (e *Engine) writeConflictMarkers(conflicts map[string]conflictSides) error {
	for path, sides := range conflicts {
		var ours, theirs []byte
		var err error

		if sides.ours != "" {
			ours, err = e.store.GetBlob(sides.ours)
			if err != nil {
				return err
			}
		}
		if sides.theirs != "" {
			theirs, err = e.store.GetBlob(sides.theirs)
			if err != nil {
				return err
			}
		}

		content := markerOurs + "\n" + string(ours) + markerMiddle + "\n" + string(theirs) + markerTheirs + "\n"

		full := filepath.Join(e.workDir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return errs.New(pkg, errs.CodeInternal, "write_conflict_markers", "failed to create directory for "+path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return errs.New(pkg, errs.CodeInternal, "write_conflict_markers", "failed to write "+path, err)
		}
	}
	return nil
}

// ClearIndexOnSuccess persists an emptied idx to path, as the `commit`
// command does after a successful commit.
func ClearIndexOnSuccess(idx *index.Index, path string) error {
	idx.Clear()
	return idx.Save(path)
}
