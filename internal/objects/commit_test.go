package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	c := &Commit{
		Tree: map[string]Fingerprint{
			"a.txt":       NewFingerprint([]byte("hello\n")),
			"dir/b.txt":   NewFingerprint([]byte("world\n")),
		},
		Parents:   []Fingerprint{NewFingerprint([]byte("parent"))},
		Author:    Identity{Name: "minigit", Email: "minigit@localhost"},
		Committer: Identity{Name: "minigit", Email: "minigit@localhost"},
		Timestamp: "2026-08-03 12:00:00",
		Message:   "first commit\n\nwith a blank line in the body",
	}

	parsed, err := ParseCommit(c.Serialize())
	require.NoError(t, err)

	assert.Equal(t, c.Tree, parsed.Tree)
	assert.Equal(t, c.Parents, parsed.Parents)
	assert.Equal(t, c.Author, parsed.Author)
	assert.Equal(t, c.Timestamp, parsed.Timestamp)
	assert.Equal(t, c.Message, parsed.Message)
}

func TestFingerprintStableForIdenticalFields(t *testing.T) {
	build := func() *Commit {
		return &Commit{
			Tree:      map[string]Fingerprint{"a.txt": NewFingerprint([]byte("x"))},
			Timestamp: "2026-08-03 12:00:00",
			Author:    Identity{Name: "a", Email: "a@b.c"},
			Committer: Identity{Name: "a", Email: "a@b.c"},
			Message:   "m",
		}
	}
	assert.Equal(t, build().Fingerprint(), build().Fingerprint())
}

func TestIsRootAndIsMerge(t *testing.T) {
	root := &Commit{}
	assert.True(t, root.IsRoot())
	assert.False(t, root.IsMerge())

	merge := &Commit{Parents: []Fingerprint{"a", "b"}}
	assert.False(t, merge.IsRoot())
	assert.True(t, merge.IsMerge())
}

func TestParseCommitRejectsMissingHeader(t *testing.T) {
	_, err := ParseCommit([]byte("not a commit"))
	assert.Error(t, err)
}
