package compare

import "errors"

// ErrNotFound is returned by stores when no comparison or plan snapshot
// exists for the given id.
var ErrNotFound = errors.New("comparison record not found")

// InvalidComparisonError rejects a comparison whose plan references cannot
// form a valid pair: missing plans, identical ids, mismatched comparison
// types or clients.
type InvalidComparisonError struct {
	Reason string
}

func (e *InvalidComparisonError) Error() string {
	return "invalid comparison: " + e.Reason
}

// InvalidAnalysisError rejects a malformed analysis payload.
type InvalidAnalysisError struct {
	Reason string
}

func (e *InvalidAnalysisError) Error() string {
	return "invalid analysis payload: " + e.Reason
}

// InvalidReasonError rejects a decision carrying an empty or whitespace-only
// reason.
type InvalidReasonError struct{}

func (e *InvalidReasonError) Error() string {
	return "decision reason must be a non-empty string"
}

// NotAnalyzedError signals a decision attempted before the analysis payload
// was attached.
type NotAnalyzedError struct {
	ID string
}

func (e *NotAnalyzedError) Error() string {
	return "comparison " + e.ID + " has no analysis attached yet"
}

// AlreadyAnalyzedError signals a second analysis attachment; analysis is
// write-once.
type AlreadyAnalyzedError struct {
	ID string
}

func (e *AlreadyAnalyzedError) Error() string {
	return "comparison " + e.ID + " already has an analysis attached"
}

// AlreadyDecidedError signals an operation on a comparison that reached its
// terminal state. A new decision requires a fresh comparison.
type AlreadyDecidedError struct {
	ID string
}

func (e *AlreadyDecidedError) Error() string {
	return "comparison " + e.ID + " is already decided"
}
