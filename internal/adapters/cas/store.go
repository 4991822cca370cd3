// Package cas implements the on-disk cache record store.
package cas

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store persists one record file per call identity under a cache root,
// sharded by the leading identity bytes.
type Store struct{}

// NewStore creates a new record store. The cache root is passed per
// operation so one process can serve calls against different roots.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the record for an identity.
//
// A missing, unreadable, or corrupt record file yields nil, nil: the cache
// is a performance optimization, so the worst a damaged record may cause is
// a spurious re-run, never a failure.
func (s *Store) Get(root string, id domain.CallIdentity) (*domain.CacheRecord, error) {
	filename := domain.RecordPath(root, id)
	//nolint:gosec // Path is derived from the cache root and a hex identity
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil
	}

	var rec domain.CacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}

	return &rec, nil
}

// Put persists the record, atomically replacing any prior one.
//
// The record is written to a temp file in the destination directory and
// renamed over the target, so a concurrent reader observes either the old
// or the new record, never a torn write.
func (s *Store) Put(root string, id domain.CallIdentity, rec domain.CacheRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := domain.RecordPath(root, id)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, "."+id.String()+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}
