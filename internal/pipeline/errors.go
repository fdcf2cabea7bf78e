package pipeline

import "fmt"

// MalformedInputError signals a fatal input defect. Preprocessing returns it
// when no row carries a first_name or last_name; text encoding is not
// checked. No partial output is returned alongside it.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("pipeline: malformed input: %s", e.Reason)
}

// EmptyCandidateSetError is benign: zero candidate pairs were produced.
// Callers that want the "return empty dup_pairs/clusters/summary" behavior
// described in spec.md §7 should treat it as a signal, not necessarily a
// propagated failure — Preprocessing itself already returns zero-value
// results in this case rather than this error, so this type exists for
// callers who want to distinguish "ran with zero pairs" from "ran with
// pairs" explicitly.
type EmptyCandidateSetError struct{}

func (e *EmptyCandidateSetError) Error() string {
	return "pipeline: empty candidate set"
}
