// Package decide implements the invalidation decision for a memoized call.
package decide

import "go.trai.ch/memo/internal/core/domain"

// Reason explains why a decision was reached.
type Reason string

const (
	// ReasonUpToDate means every digest matched the record; the run is skipped.
	ReasonUpToDate Reason = "up-to-date"
	// ReasonNoRecord means no prior record exists for this call identity.
	ReasonNoRecord Reason = "no previous run"
	// ReasonInputChanged means an input digest differs from the record.
	ReasonInputChanged Reason = "input changed"
	// ReasonOutputChanged means an output digest differs from the record.
	ReasonOutputChanged Reason = "output changed"
	// ReasonForced means the caller requested an unconditional run.
	ReasonForced Reason = "forced"
	// ReasonShapeChanged means the record does not line up with the call's
	// declared paths. A changed call normally has a different identity, so
	// this indicates a damaged record; it degrades to a run, never an error.
	ReasonShapeChanged Reason = "call shape changed"
)

// Decision is the outcome of comparing current digests against a record.
type Decision struct {
	// Run is true when the command must be executed.
	Run bool
	// Reason explains the decision.
	Reason Reason
	// Path names the first mismatching path, when one exists.
	Path string
}

// Decide compares the current digests of a call's declared paths against its
// stored record and returns Run or Skip.
//
// The digest slices must be parallel to call.Inputs and call.Outputs; the
// caller computes them once and reuses them, so deciding never re-hashes.
// Decide is pure: same arguments, same decision, no side effects.
func Decide(call domain.Call, rec *domain.CacheRecord, inputs, outputs []domain.FileDigest) Decision {
	if rec == nil {
		return Decision{Run: true, Reason: ReasonNoRecord}
	}

	if len(rec.Inputs) != len(call.Inputs) || len(rec.Outputs) != len(call.Outputs) {
		return Decision{Run: true, Reason: ReasonShapeChanged}
	}

	if path, ok := firstMismatch(call.Inputs, rec.Inputs, inputs); ok {
		if path == "" {
			return Decision{Run: true, Reason: ReasonShapeChanged}
		}
		return Decision{Run: true, Reason: ReasonInputChanged, Path: path}
	}

	if path, ok := firstMismatch(call.Outputs, rec.Outputs, outputs); ok {
		if path == "" {
			return Decision{Run: true, Reason: ReasonShapeChanged}
		}
		return Decision{Run: true, Reason: ReasonOutputChanged, Path: path}
	}

	return Decision{Run: false, Reason: ReasonUpToDate}
}

// firstMismatch compares current digests against recorded entries position
// by position. It returns the offending path, or an empty path when the
// record's entry names a different path than the call declares at that
// position.
func firstMismatch(paths []string, recorded []domain.PathDigest, current []domain.FileDigest) (string, bool) {
	for i, path := range paths {
		if recorded[i].Path != path {
			return "", true
		}
		if !recorded[i].Digest.Equal(current[i]) {
			return path, true
		}
	}
	return "", false
}
