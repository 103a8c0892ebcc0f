package refs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunv/minigit/internal/objects"
)

func TestInitHeadIsAttachedAndUnborn(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.InitHead("master"))

	head, err := s.HeadRead()
	require.NoError(t, err)
	assert.True(t, head.Attached)
	assert.True(t, head.Unborn)
	assert.Equal(t, "master", head.Branch)
}

func TestBranchWriteReadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.InitHead("master"))

	fp := objects.NewFingerprint([]byte("commit"))
	require.NoError(t, s.BranchWrite("master", fp))

	got, err := s.BranchRead("master")
	require.NoError(t, err)
	assert.Equal(t, fp, got)

	head, err := s.HeadRead()
	require.NoError(t, err)
	assert.False(t, head.Unborn)
}

func TestHeadWriteDetached(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.InitHead("master"))

	fp := objects.NewFingerprint([]byte("commit"))
	require.NoError(t, s.HeadWriteDetached(fp))

	head, err := s.HeadRead()
	require.NoError(t, err)
	assert.False(t, head.Attached)
	assert.Equal(t, fp, head.Commit)
}

func TestBranchReadUnknownBranch(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.InitHead("master"))

	_, err := s.BranchRead("does-not-exist")
	assert.Error(t, err)
}

func TestResolveHeadCommitUnbornIsEmpty(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.InitHead("master"))

	fp, err := s.ResolveHeadCommit()
	require.NoError(t, err)
	assert.Equal(t, objects.Fingerprint(""), fp)
}

func TestListBranches(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	require.NoError(t, s.InitHead("master"))
	require.NoError(t, s.BranchWrite("feature", objects.NewFingerprint([]byte("x"))))

	names, err := s.ListBranches()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"master", "feature"}, names)
}

func TestBranchExists(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.InitHead("master"))

	exists, err := s.BranchExists("master")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.BranchExists("nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHeadPathLayout(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	require.NoError(t, s.InitHead("master"))
	assert.Equal(t, filepath.Join(root, "HEAD"), s.headPath())
}
