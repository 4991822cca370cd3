package domain

import "time"

// PathDigest pairs one declared path with its content digest. Records keep
// entries in declaration order so the decision engine can compare position
// by position.
type PathDigest struct {
	Path   string     `json:"path"`
	Digest FileDigest `json:"digest"`
}

// CacheRecord is the persisted snapshot of a call's input and output digests
// at the time of its last successful run. One record per identity; replaced
// wholesale after every successful run, never partially updated.
type CacheRecord struct {
	Inputs    []PathDigest `json:"inputs"`
	Outputs   []PathDigest `json:"outputs"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewCacheRecord builds a record for a call from digests computed after a
// successful run. The digest slices must be parallel to the call's input and
// output lists.
func NewCacheRecord(call Call, inputs, outputs []FileDigest, now time.Time) CacheRecord {
	rec := CacheRecord{
		Inputs:    make([]PathDigest, len(call.Inputs)),
		Outputs:   make([]PathDigest, len(call.Outputs)),
		Timestamp: now,
	}
	for i, path := range call.Inputs {
		rec.Inputs[i] = PathDigest{Path: path, Digest: inputs[i]}
	}
	for i, path := range call.Outputs {
		rec.Outputs[i] = PathDigest{Path: path, Digest: outputs[i]}
	}
	return rec
}
