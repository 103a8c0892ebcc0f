package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

func runCmd(cmd interface {
	SetArgs([]string)
	Execute() error
}, args ...string) error {
	cmd.SetArgs(args)
	return cmd.Execute()
}

// TestScenarioInitAddCommitLog exercises the literal init/add/commit/log
// workflow: one commit reachable from HEAD, with the expected tree.
func TestScenarioInitAddCommitLog(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	r := h.InitRepo()
	h.Chdir()

	h.WriteFile("a.txt", "hello\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "first"))

	refStore := refs.New(r.Root)
	head, err := refStore.HeadRead()
	require.NoError(t, err)
	assert.True(t, head.Attached)
	assert.Equal(t, "master", head.Branch)

	headFp, err := refStore.ResolveHeadCommit()
	require.NoError(t, err)
	require.NotEmpty(t, headFp)

	s := store.New(r.ObjectsDir())
	c, err := s.GetCommit(headFp)
	require.NoError(t, err)
	assert.Equal(t, "first", c.Message)
	assert.Empty(t, c.Parents)
	assert.Equal(t, objects.NewFingerprint([]byte("hello\n")), c.Tree["a.txt"])
}

// TestScenarioBranchAndCheckoutRestoresContent continues the first
// scenario: branching, modifying, committing again, then checking out
// the original branch restores the original content.
func TestScenarioBranchAndCheckoutRestoresContent(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("a.txt", "hello\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "first"))

	require.NoError(t, runCmd(newBranchCmd(), "feature"))

	h.WriteFile("a.txt", "hello2\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "second"))

	require.NoError(t, runCmd(newCheckoutCmd(), "feature"))

	data, err := os.ReadFile(filepath.Join(h.RepoPath, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	r, err := findRepository()
	require.NoError(t, err)
	head, err := refs.New(r.Root).HeadRead()
	require.NoError(t, err)
	assert.True(t, head.Attached)
	assert.Equal(t, "feature", head.Branch)
}

// TestScenarioDetachedCheckoutByFingerprint continues the branch
// scenario by checking out the first commit directly, by fingerprint.
func TestScenarioDetachedCheckoutByFingerprint(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	r := h.InitRepo()
	h.Chdir()

	h.WriteFile("a.txt", "hello\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "first"))

	refStore := refs.New(r.Root)
	firstFp, err := refStore.ResolveHeadCommit()
	require.NoError(t, err)

	require.NoError(t, runCmd(newBranchCmd(), "feature"))
	h.WriteFile("a.txt", "hello2\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "second"))

	require.NoError(t, runCmd(newCheckoutCmd(), firstFp.String()))

	head, err := refStore.HeadRead()
	require.NoError(t, err)
	assert.False(t, head.Attached)
	assert.Equal(t, firstFp, head.Commit)

	data, err := os.ReadFile(filepath.Join(h.RepoPath, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

// TestScenarioCleanThreeWayMerge exercises the literal clean merge
// scenario: independent changes to distinct files on two branches. Each
// commit restages every tracked file, since this index has no
// tombstone-aware carry-forward between commits.
func TestScenarioCleanThreeWayMerge(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("x", "1")
	h.WriteFile("y", "1")
	require.NoError(t, runCmd(newAddCmd(), "x"))
	require.NoError(t, runCmd(newAddCmd(), "y"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "base"))

	require.NoError(t, runCmd(newBranchCmd(), "feat"))

	h.WriteFile("x", "2")
	require.NoError(t, runCmd(newAddCmd(), "x"))
	require.NoError(t, runCmd(newAddCmd(), "y"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "main changes x"))

	require.NoError(t, runCmd(newCheckoutCmd(), "feat"))
	h.WriteFile("y", "2")
	require.NoError(t, runCmd(newAddCmd(), "x"))
	require.NoError(t, runCmd(newAddCmd(), "y"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "feat changes y"))

	require.NoError(t, runCmd(newCheckoutCmd(), "master"))
	require.NoError(t, runCmd(newMergeCmd(), "feat"))

	x, err := os.ReadFile(filepath.Join(h.RepoPath, "x"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(x))

	y, err := os.ReadFile(filepath.Join(h.RepoPath, "y"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(y))
}

// TestScenarioModifyModifyConflict exercises the literal conflict
// scenario: both branches change the same file to different values.
func TestScenarioModifyModifyConflict(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("z", "A")
	require.NoError(t, runCmd(newAddCmd(), "z"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "base"))

	require.NoError(t, runCmd(newBranchCmd(), "feat"))

	h.WriteFile("z", "B")
	require.NoError(t, runCmd(newAddCmd(), "z"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "main sets z=B"))

	require.NoError(t, runCmd(newCheckoutCmd(), "feat"))
	h.WriteFile("z", "C")
	require.NoError(t, runCmd(newAddCmd(), "z"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "feat sets z=C"))

	require.NoError(t, runCmd(newCheckoutCmd(), "master"))
	err := runCmd(newMergeCmd(), "feat")
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(h.RepoPath, "z"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<<<<<<< OURS\nB"))
	assert.Contains(t, content, "=======\nC")
	assert.Contains(t, content, ">>>>>>> THEIRS")

	headFp, err := refs.New(mustRepoRoot(t)).BranchRead("master")
	require.NoError(t, err)
	require.NotEmpty(t, headFp)
}

// TestScenarioDeleteModifyConflict exercises the literal delete/modify
// scenario: main deletes a file while feat changes it. It also carries
// a second file, z, deleted independently on both sides, to check that
// the merge cleans up a stale working-tree copy of a path that neither
// side's own tip tracks anymore, not just the conflicting path.
func TestScenarioDeleteModifyConflict(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("w", "A")
	h.WriteFile("z", "Z")
	h.WriteFile("y", "1")
	require.NoError(t, runCmd(newAddCmd(), "w"))
	require.NoError(t, runCmd(newAddCmd(), "z"))
	require.NoError(t, runCmd(newAddCmd(), "y"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "base"))

	require.NoError(t, runCmd(newBranchCmd(), "feat"))

	// main deletes w and z: neither is re-added, and the physical files
	// are left in place, exactly as a working tree looks right after
	// dropping a path from tracking without a checkout to sync it away.
	require.NoError(t, runCmd(newAddCmd(), "y"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "main deletes w and z"))

	require.NoError(t, runCmd(newCheckoutCmd(), "feat"))
	h.WriteFile("w", "B")
	require.NoError(t, runCmd(newAddCmd(), "w"))
	require.NoError(t, runCmd(newAddCmd(), "y"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "feat changes w, deletes z"))

	require.NoError(t, runCmd(newCheckoutCmd(), "master"))
	err := runCmd(newMergeCmd(), "feat")
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(h.RepoPath, "w"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<<<<<<< OURS\n=======\nB"))
	assert.Contains(t, content, ">>>>>>> THEIRS")

	_, statErr := os.Stat(filepath.Join(h.RepoPath, "z"))
	assert.True(t, os.IsNotExist(statErr))

	headFp, err := refs.New(mustRepoRoot(t)).BranchRead("master")
	require.NoError(t, err)
	require.NotEmpty(t, headFp)
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()
	r, err := findRepository()
	require.NoError(t, err)
	return r.Root
}

// TestScenarioMergeOfBranchIntoItselfIsUpToDate exercises the merge
// identity law: merging a branch into itself reports up to date and
// produces no commit.
func TestScenarioMergeOfBranchIntoItselfIsUpToDate(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("a.txt", "hello\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "first"))

	require.NoError(t, runCmd(newMergeCmd(), "master"))
}

// TestScenarioStatusRunsWithUntrackedAndModifiedFiles exercises the
// status façade over one modified tracked path and one untracked path,
// and checks that it completes without error; the printed report itself
// is not inspected.
func TestScenarioStatusRunsWithUntrackedAndModifiedFiles(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("tracked.txt", "v1")
	require.NoError(t, runCmd(newAddCmd(), "tracked.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "base"))

	h.WriteFile("tracked.txt", "v2")
	h.WriteFile("untracked.txt", "new")

	require.NoError(t, runCmd(newStatusCmd()))
}

// TestScenarioBranchCreateRejectsExistingName exercises the strict
// BranchExists policy for `branch` on an existing name.
func TestScenarioBranchCreateRejectsExistingName(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	h := NewTestHelper(t)
	h.InitRepo()
	h.Chdir()

	h.WriteFile("a.txt", "hello\n")
	require.NoError(t, runCmd(newAddCmd(), "a.txt"))
	require.NoError(t, runCmd(newCommitCmd(), "-m", "first"))

	require.NoError(t, runCmd(newBranchCmd(), "feature"))
	err := runCmd(newBranchCmd(), "feature")
	assert.Error(t, err)
}
