// Package fs implements file content hashing against the local file system.
package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes SHA-256 content digests for declared paths.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Digest computes the content digest of the file at path.
//
// A missing file is a legitimate state (first run, output not yet produced)
// and yields domain.AbsentDigest rather than an error. A path that exists
// but cannot be read is a configuration error for the whole call.
func (h *Hasher) Digest(path string) (domain.FileDigest, error) {
	f, err := os.Open(path) //nolint:gosec // Path is declared by the caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.AbsentDigest, nil
		}
		return domain.AbsentDigest, zerr.With(
			zerr.Wrap(err, domain.ErrPathUnreadable.Error()),
			"path", path,
		)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	info, err := f.Stat()
	if err != nil {
		return domain.AbsentDigest, zerr.With(
			zerr.Wrap(err, domain.ErrPathUnreadable.Error()),
			"path", path,
		)
	}
	if info.IsDir() {
		return domain.AbsentDigest, zerr.With(
			zerr.Wrap(domain.ErrPathUnreadable, "expected a file, found a directory"),
			"path", path,
		)
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return domain.AbsentDigest, zerr.With(
			zerr.Wrap(err, domain.ErrPathUnreadable.Error()),
			"path", path,
		)
	}

	var sum [sha256.Size]byte
	hasher.Sum(sum[:0])
	return domain.NewFileDigest(sum), nil
}

// DigestAll resolves each path against dir and hashes the files concurrently.
// The returned slice is parallel to paths. Hashing independent paths has no
// ordering dependency, so the work is fanned out; the caller still observes a
// single complete round of digests.
func (h *Hasher) DigestAll(ctx context.Context, dir string, paths []string) ([]domain.FileDigest, error) {
	digests := make([]domain.FileDigest, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := h.Digest(resolve(dir, path))
			if err != nil {
				return err
			}
			digests[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return digests, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
