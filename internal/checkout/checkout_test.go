package checkout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

func setup(t *testing.T) (*Engine, *store.Store, *refs.Store, string) {
	t.Helper()
	root := t.TempDir()
	workDir := t.TempDir()
	s := store.New(filepath.Join(root, "objects"))
	r := refs.New(root)
	require.NoError(t, r.InitHead("master"))
	return New(s, r, workDir), s, r, workDir
}

func putCommit(t *testing.T, s *store.Store, tree map[string]string) objects.Fingerprint {
	t.Helper()
	m := make(map[string]objects.Fingerprint)
	for path, content := range tree {
		fp, err := s.PutBlob([]byte(content))
		require.NoError(t, err)
		m[path] = fp
	}
	c := &objects.Commit{
		Tree:      m,
		Author:    objects.Identity{Name: "t", Email: "t@t"},
		Committer: objects.Identity{Name: "t", Email: "t@t"},
		Timestamp: "2026-08-03 12:00:00",
		Message:   "m",
	}
	fp, err := s.PutCommit(c)
	require.NoError(t, err)
	return fp
}

func TestResolveUnknownTarget(t *testing.T) {
	e, _, _, _ := setup(t)
	_, err := e.Resolve("nope")
	assert.True(t, errs.IsCode(err, errs.CodeUnknownTarget))
}

func TestResolveBranchName(t *testing.T) {
	e, s, r, _ := setup(t)
	fp := putCommit(t, s, map[string]string{"a.txt": "hello\n"})
	require.NoError(t, r.BranchWrite("master", fp))

	target, err := e.Resolve("master")
	require.NoError(t, err)
	assert.True(t, target.IsBranch)
	assert.Equal(t, fp, target.Commit)
}

func TestResolveByFingerprint(t *testing.T) {
	e, s, _, _ := setup(t)
	fp := putCommit(t, s, map[string]string{"a.txt": "hello\n"})

	target, err := e.Resolve(fp.String())
	require.NoError(t, err)
	assert.True(t, target.IsDetached)
}

func TestCheckoutMaterializesFiles(t *testing.T) {
	e, s, r, workDir := setup(t)
	fp := putCommit(t, s, map[string]string{"a.txt": "hello\n"})
	require.NoError(t, r.BranchWrite("master", fp))

	_, err := e.Checkout("master", "")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(workDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestCheckoutRemovesTrackedPathsAbsentFromTarget(t *testing.T) {
	e, s, r, workDir := setup(t)

	from := putCommit(t, s, map[string]string{"a.txt": "v1", "b.txt": "keep"})
	to := putCommit(t, s, map[string]string{"b.txt": "keep"})
	require.NoError(t, r.BranchWrite("master", from))
	_, err := e.Checkout("master", "")
	require.NoError(t, err)

	require.NoError(t, r.BranchWrite("feature", to))
	_, err = e.Checkout("feature", from)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(workDir, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))

	data, err := os.ReadFile(filepath.Join(workDir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestMaterializeTreeRemovesAndWrites(t *testing.T) {
	e, s, _, workDir := setup(t)

	fromFp, err := s.PutBlob([]byte("v1"))
	require.NoError(t, err)
	keepFp, err := s.PutBlob([]byte("keep"))
	require.NoError(t, err)

	fromTree := map[string]objects.Fingerprint{"a.txt": fromFp, "b.txt": keepFp}
	require.NoError(t, e.WriteTree(fromTree))

	toTree := map[string]objects.Fingerprint{"b.txt": keepFp}
	require.NoError(t, e.MaterializeTree(fromTree, toTree))

	_, statErr := os.Stat(filepath.Join(workDir, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))

	data, err := os.ReadFile(filepath.Join(workDir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestCheckoutSetsHeadState(t *testing.T) {
	e, s, r, _ := setup(t)
	fp := putCommit(t, s, map[string]string{"a.txt": "hello\n"})
	require.NoError(t, r.BranchWrite("master", fp))
	require.NoError(t, r.BranchWrite("feature", fp))

	_, err := e.Checkout("feature", "")
	require.NoError(t, err)
	head, err := r.HeadRead()
	require.NoError(t, err)
	assert.True(t, head.Attached)
	assert.Equal(t, "feature", head.Branch)

	_, err = e.Checkout(fp.String(), fp)
	require.NoError(t, err)
	head, err = r.HeadRead()
	require.NoError(t, err)
	assert.False(t, head.Attached)
	assert.Equal(t, fp, head.Commit)
}
