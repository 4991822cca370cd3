// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/memo/internal/core/domain"
)

// Hasher defines the interface for computing file content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest computes the content digest of the file at path.
	// A missing file yields domain.AbsentDigest with a nil error; a path that
	// exists but cannot be read yields domain.ErrPathUnreadable.
	Digest(path string) (domain.FileDigest, error)

	// DigestAll resolves each path against dir and computes all digests.
	// The returned slice is parallel to paths. Independent paths may be
	// hashed concurrently.
	DigestAll(ctx context.Context, dir string, paths []string) ([]domain.FileDigest, error)
}
