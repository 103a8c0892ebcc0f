// Package graph implements commit ancestry queries: reverse traversal
// through parent pointers, and lowest-common-ancestor lookup for the
// Merge Engine.
package graph

import (
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/store"
)

// Walker answers ancestry queries against an Object Store's commit
// graph.
type Walker struct {
	store *store.Store
}

// New creates a Walker backed by s.
func New(s *store.Store) *Walker {
	return &Walker{store: s}
}

// Ancestors returns the set of commits reachable from fp by following
// parent pointers, including fp itself. Traversal is breadth-first and
// terminates on repeat visits, so diamond histories are visited once
// each.
func (w *Walker) Ancestors(fp objects.Fingerprint) (map[objects.Fingerprint]bool, error) {
	visited := make(map[objects.Fingerprint]bool)
	queue := []objects.Fingerprint{fp}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		commit, err := w.store.GetCommit(cur)
		if err != nil {
			return nil, err
		}
		queue = append(queue, commit.Parents...)
	}

	return visited, nil
}

// LowestCommonAncestor finds a nearest common ancestor of a and b:
// compute ancestors(a), then breadth-first search from b until landing
// on a member of that set. Returns "" with no error if the two
// histories share no ancestor.
func (w *Walker) LowestCommonAncestor(a, b objects.Fingerprint) (objects.Fingerprint, error) {
	ancestorsOfA, err := w.Ancestors(a)
	if err != nil {
		return "", err
	}

	visited := make(map[objects.Fingerprint]bool)
	queue := []objects.Fingerprint{b}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		if ancestorsOfA[cur] {
			return cur, nil
		}

		commit, err := w.store.GetCommit(cur)
		if err != nil {
			return "", err
		}
		queue = append(queue, commit.Parents...)
	}

	return "", nil
}

// IsAncestor reports whether candidate is an ancestor of (or equal to)
// fp.
func (w *Walker) IsAncestor(candidate, fp objects.Fingerprint) (bool, error) {
	ancestors, err := w.Ancestors(fp)
	if err != nil {
		return false, err
	}
	return ancestors[candidate], nil
}
