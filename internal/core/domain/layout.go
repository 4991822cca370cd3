package domain

import (
	"os"
	"path/filepath"
)

const (
	// CacheDirName is the name of the tool's directory under the user cache
	// location.
	CacheDirName = "memo"

	// RecordFileExt is the extension of persisted cache record files.
	RecordFileExt = ".json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCacheRoot returns the record store root derived from the platform's
// user cache location.
func DefaultCacheRoot() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", ErrCacheRootResolution
	}
	return filepath.Join(dir, CacheDirName), nil
}

// RecordPath returns the path of the record file for an identity, relative
// to the cache root. Records are sharded by the first two identity bytes to
// keep directories small.
func RecordPath(root string, id CallIdentity) string {
	hex := id.String()
	return filepath.Join(root, hex[0:2], hex[2:4], hex+RecordFileExt)
}
