// Package index implements the staging area: a persisted
// path→blob-fingerprint mapping that `add` populates and `commit`
// consumes.
package index

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/objects"
)

const pkg = "index"

// Index is the in-memory staging area, one `path SP fingerprint` entry
// per line when persisted.
type Index struct {
	entries map[string]objects.Fingerprint
}

// New creates an empty Index.
func New() *Index {
	return &Index{entries: make(map[string]objects.Fingerprint)}
}

// Set stages path at fingerprint fp, overwriting any previous entry for
// that path.
func (idx *Index) Set(path string, fp objects.Fingerprint) {
	idx.entries[path] = fp
}

// Get returns the fingerprint staged for path, if any.
func (idx *Index) Get(path string) (objects.Fingerprint, bool) {
	fp, ok := idx.entries[path]
	return fp, ok
}

// Len reports the number of staged entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Paths returns every staged path, sorted.
func (idx *Index) Paths() []string {
	paths := make([]string, 0, len(idx.entries))
	for p := range idx.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Snapshot copies the current path→fingerprint mapping, for handing to
// the Snapshot Engine as an immutable tree map.
func (idx *Index) Snapshot() map[string]objects.Fingerprint {
	out := make(map[string]objects.Fingerprint, len(idx.entries))
	for p, fp := range idx.entries {
		out[p] = fp
	}
	return out
}

// Clear empties the index, as `commit` does on success.
func (idx *Index) Clear() {
	idx.entries = make(map[string]objects.Fingerprint)
}

// Load reads path's text-format index file. A missing file is treated
// as an empty index; init creates the file eagerly, but Load tolerates
// its absence for robustness.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errs.New(pkg, errs.CodeInternal, "load", "failed to read index file", err)
	}

	idx := New()
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, errs.New(pkg, errs.CodeMalformedObject, "load", "malformed index line: "+line, nil)
		}
		fp, err := objects.ParseFingerprint(parts[1])
		if err != nil {
			return nil, errs.New(pkg, errs.CodeMalformedObject, "load", "malformed index fingerprint", err)
		}
		idx.entries[parts[0]] = fp
	}
	return idx, nil
}

// Save writes idx to path in the entry-per-line text format, sorted for
// deterministic diffs.
func (idx *Index) Save(path string) error {
	var buf strings.Builder
	for _, p := range idx.Paths() {
		buf.WriteString(p)
		buf.WriteByte(' ')
		buf.WriteString(idx.entries[p].String())
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to create index directory", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to create temp index file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(buf.String()); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to write index", err)
	}
	if err := tmp.Close(); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to close temp index file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to rename index into place", err)
	}
	return nil
}
