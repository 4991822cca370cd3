package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// CallIdentity is a deterministic key derived from a call's structural fields.
// It never incorporates file content and carries no meaning beyond equality;
// it is used solely to locate the call's cache record.
type CallIdentity [sha256.Size]byte

// Section tags keep the framed fields unambiguous: a path moving from the
// input list to the output list must change the identity even when the
// concatenated bytes would be equal.
const (
	tagWorkingDir byte = 'w'
	tagInputs     byte = 'i'
	tagOutputs    byte = 'o'
	tagCommand    byte = 'c'
)

// Identify derives the identity for a call.
//
// Every field is framed with a section tag and uvarint length prefixes before
// hashing, so neither adjacent-field concatenation nor list-boundary shifts
// can collide. Identical calls always produce identical identities; any
// difference in any field, including ordering, produces a different identity.
func Identify(c Call) CallIdentity {
	h := sha256.New()

	writeTaggedString(h, tagWorkingDir, c.WorkingDir)
	writeTaggedList(h, tagInputs, c.Inputs)
	writeTaggedList(h, tagOutputs, c.Outputs)
	writeTaggedList(h, tagCommand, c.Command)

	var id CallIdentity
	h.Sum(id[:0])
	return id
}

func writeTaggedString(h hash.Hash, tag byte, s string) {
	var buf [binary.MaxVarintLen64]byte
	_, _ = h.Write([]byte{tag})
	n := binary.PutUvarint(buf[:], uint64(len(s)))
	_, _ = h.Write(buf[:n])
	_, _ = h.Write([]byte(s))
}

func writeTaggedList(h hash.Hash, tag byte, items []string) {
	var buf [binary.MaxVarintLen64]byte
	_, _ = h.Write([]byte{tag})
	n := binary.PutUvarint(buf[:], uint64(len(items)))
	_, _ = h.Write(buf[:n])
	for _, item := range items {
		n := binary.PutUvarint(buf[:], uint64(len(item)))
		_, _ = h.Write(buf[:n])
		_, _ = h.Write([]byte(item))
	}
}

// String returns the lowercase hex encoding of the identity.
func (id CallIdentity) String() string {
	return hex.EncodeToString(id[:])
}

// ParseCallIdentity decodes a hex-encoded identity.
func ParseCallIdentity(s string) (CallIdentity, error) {
	var id CallIdentity
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, ErrInvalidIdentity
	}
	if len(b) != len(id) {
		return id, ErrInvalidIdentity
	}
	copy(id[:], b)
	return id, nil
}
