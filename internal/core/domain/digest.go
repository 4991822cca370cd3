package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// absentEncoding is the serialized form of the absent digest state.
const absentEncoding = "absent"

// FileDigest is a content fingerprint of a single file at one point in time.
// Two files with identical bytes produce identical digests regardless of
// path, name, or timestamp.
//
// The zero value is the distinguished absent state, which compares unequal
// to every content digest. A missing file is a legitimate state, not an
// error, so it is represented here rather than with an error return.
type FileDigest struct {
	sum     [sha256.Size]byte
	present bool
}

// AbsentDigest is the digest of a file that does not exist.
var AbsentDigest = FileDigest{}

// NewFileDigest wraps a raw SHA-256 sum as a content digest.
func NewFileDigest(sum [sha256.Size]byte) FileDigest {
	return FileDigest{sum: sum, present: true}
}

// DigestBytes computes the content digest of an in-memory byte slice.
func DigestBytes(b []byte) FileDigest {
	return NewFileDigest(sha256.Sum256(b))
}

// Present reports whether the digest describes existing content, as opposed
// to the absent state.
func (d FileDigest) Present() bool {
	return d.present
}

// Equal reports whether two digests describe the same state: both absent, or
// both present with the same sum.
func (d FileDigest) Equal(other FileDigest) bool {
	return d == other
}

// String returns the hex-encoded sum, or "absent" for the absent state.
func (d FileDigest) String() string {
	if !d.present {
		return absentEncoding
	}
	return hex.EncodeToString(d.sum[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d FileDigest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *FileDigest) UnmarshalText(text []byte) error {
	if string(text) == absentEncoding {
		*d = AbsentDigest
		return nil
	}
	b, err := hex.DecodeString(string(text))
	if err != nil || len(b) != sha256.Size {
		return ErrInvalidDigest
	}
	d.present = true
	copy(d.sum[:], b)
	return nil
}
