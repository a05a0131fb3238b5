// Package store wraps the MongoDB collections behind the narrow contracts the
// rest of the service depends on. All cross-document coordination happens
// through single-document conditional updates (filter on the expected current
// value, check MatchedCount), which is the strongest guarantee the store
// offers without multi-document transactions.
package store

import "errors"

var (
	// ErrNotFound means the identifier did not resolve to a document.
	ErrNotFound = errors.New("store: document not found")

	// ErrConditionFailed means a conditional update matched no document:
	// either it is gone or its guarded field no longer holds the expected
	// value. Callers treat this as losing the race.
	ErrConditionFailed = errors.New("store: condition failed")
)
