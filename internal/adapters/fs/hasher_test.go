package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/adapters/fs"
	"go.trai.ch/memo/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestHasher_Digest_Content(t *testing.T) {
	t.Parallel()

	hasher := fs.NewHasher()
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "in.txt", "hello")

	d, err := hasher.Digest(path)
	require.NoError(t, err)
	assert.True(t, d.Present())
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", d.String())
}

func TestHasher_Digest_ContentNotPath(t *testing.T) {
	t.Parallel()

	hasher := fs.NewHasher()
	tmpDir := t.TempDir()
	a := writeFile(t, tmpDir, "a.txt", "same bytes")
	b := writeFile(t, tmpDir, "b.txt", "same bytes")

	da, err := hasher.Digest(a)
	require.NoError(t, err)
	db, err := hasher.Digest(b)
	require.NoError(t, err)

	assert.True(t, da.Equal(db), "identical bytes must digest identically regardless of path")
}

func TestHasher_Digest_Missing(t *testing.T) {
	t.Parallel()

	hasher := fs.NewHasher()
	d, err := hasher.Digest(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err, "a missing file is a state, not an error")
	assert.False(t, d.Present())
}

func TestHasher_Digest_Directory(t *testing.T) {
	t.Parallel()

	hasher := fs.NewHasher()
	tmpDir := t.TempDir()

	_, err := hasher.Digest(tmpDir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPathUnreadable.Error())
}

func TestHasher_DigestAll(t *testing.T) {
	t.Parallel()

	hasher := fs.NewHasher()
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.txt", "aaa")
	writeFile(t, tmpDir, "b.txt", "bbb")

	digests, err := hasher.DigestAll(context.Background(), tmpDir, []string{"a.txt", "b.txt", "missing.txt"})
	require.NoError(t, err)
	require.Len(t, digests, 3)

	assert.True(t, digests[0].Present())
	assert.True(t, digests[1].Present())
	assert.False(t, digests[0].Equal(digests[1]))
	assert.False(t, digests[2].Present())
}

func TestHasher_DigestAll_PropagatesUnreadable(t *testing.T) {
	t.Parallel()

	hasher := fs.NewHasher()
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir"), 0o750))

	_, err := hasher.DigestAll(context.Background(), tmpDir, []string{"subdir"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPathUnreadable.Error())
}
