package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunv/minigit/internal/common/errs"
)

func TestInitCreatesLayout(t *testing.T) {
	workDir := t.TempDir()
	r, err := Init(workDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workDir, DirName), r.Root)
	assert.DirExists(t, r.ObjectsDir())
	assert.DirExists(t, r.RefsHeadsDir())
}

func TestInitFailsWhenAlreadyInitialized(t *testing.T) {
	workDir := t.TempDir()
	_, err := Init(workDir)
	require.NoError(t, err)

	_, err = Init(workDir)
	assert.True(t, errs.IsCode(err, errs.CodeAlreadyInit))
}

func TestOpenFindsRepositoryFromSubdirectory(t *testing.T) {
	workDir := t.TempDir()
	_, err := Init(workDir)
	require.NoError(t, err)

	sub := filepath.Join(workDir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	found, err := Open(sub)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, DirName), found.Root)
	assert.Equal(t, workDir, found.WorkDir)
}

func TestOpenFailsOutsideAnyRepository(t *testing.T) {
	workDir := t.TempDir()
	_, err := Open(workDir)
	assert.True(t, errs.IsCode(err, errs.CodeNotARepository))
}
