// Package store implements the Object Store: content-addressed,
// write-once persistence for blobs and commits under a repository's
// objects/ directory, sharded the way Git shards its own object store.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/objects"
)

const pkg = "store"

// Store is the Object Store. It is the sole writer under objects/.
type Store struct {
	objectsDir string
}

// New creates a Store rooted at objectsDir. The directory is created
// lazily by the first Put call.
func New(objectsDir string) *Store {
	return &Store{objectsDir: objectsDir}
}

// PutBlob stores data as a Blob, returning its fingerprint. Storing the
// same bytes twice is a no-op the second time and returns the same
// fingerprint.
func (s *Store) PutBlob(data []byte) (objects.Fingerprint, error) {
	blob := objects.NewBlob(data)
	fp := blob.Fingerprint()
	if err := s.writeIfAbsent(fp, blob.Bytes()); err != nil {
		return "", errs.New(pkg, errs.CodeInternal, "put_blob", "failed to write blob", err)
	}
	return fp, nil
}

// GetBlob reads back the bytes stored under fp. Returns a
// CodeMissingObject error if absent.
func (s *Store) GetBlob(fp objects.Fingerprint) ([]byte, error) {
	data, err := s.read(fp)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// PutCommit serializes c and stores it, returning its fingerprint.
// Re-storing an identical commit is a no-op.
func (s *Store) PutCommit(c *objects.Commit) (objects.Fingerprint, error) {
	data := c.Serialize()
	fp := objects.NewFingerprint(data)
	if err := s.writeIfAbsent(fp, data); err != nil {
		return "", errs.New(pkg, errs.CodeInternal, "put_commit", "failed to write commit", err)
	}
	return fp, nil
}

// GetCommit reads and parses the commit stored under fp.
func (s *Store) GetCommit(fp objects.Fingerprint) (*objects.Commit, error) {
	data, err := s.read(fp)
	if err != nil {
		return nil, err
	}
	c, err := objects.ParseCommit(data)
	if err != nil {
		return nil, errs.New(pkg, errs.CodeMalformedObject, "get_commit", fmt.Sprintf("object %s is not a valid commit", fp.Short()), err)
	}
	return c, nil
}

// Has reports whether an object with fingerprint fp exists in the store.
func (s *Store) Has(fp objects.Fingerprint) (bool, error) {
	path, err := s.pathFor(fp)
	if err != nil {
		return false, errs.New(pkg, errs.CodeInvalidInput, "has", "invalid fingerprint", err)
	}
	_, statErr := os.Stat(path)
	if statErr == nil {
		return true, nil
	}
	if os.IsNotExist(statErr) {
		return false, nil
	}
	return false, errs.New(pkg, errs.CodeInternal, "has", "failed to stat object", statErr)
}

func (s *Store) read(fp objects.Fingerprint) ([]byte, error) {
	path, err := s.pathFor(fp)
	if err != nil {
		return nil, errs.New(pkg, errs.CodeInvalidInput, "get", "invalid fingerprint", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(pkg, errs.CodeMissingObject, "get", fmt.Sprintf("object %s not found", fp.Short()), nil)
		}
		return nil, errs.New(pkg, errs.CodeInternal, "get", "failed to read object", err)
	}
	return data, nil
}

// writeIfAbsent writes data under fp's path unless that file already
// exists. A differing object is never allowed to overwrite one already
// stored under the same fingerprint (impossible here since fp is derived
// from data, but the check also makes every write idempotent).
func (s *Store) writeIfAbsent(fp objects.Fingerprint, data []byte) error {
	path, err := s.pathFor(fp)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}

	if err := os.Chmod(tmpName, 0o444); err != nil {
		return fmt.Errorf("chmod object: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename object into place: %w", err)
	}
	return nil
}

// pathFor shards fp as objects/<fp[0:2]>/<fp[2:]>, mirroring Git's own
// two-level fan-out.
func (s *Store) pathFor(fp objects.Fingerprint) (string, error) {
	if err := fp.Validate(); err != nil {
		return "", err
	}
	str := fp.String()
	return filepath.Join(s.objectsDir, str[:2], str[2:]), nil
}
