// Package corerrors defines the closed set of error categories shared
// across the import pipeline.
package corerrors

import "errors"

var (
	// ErrMalformedInput means no recognizable root bookmark list was found.
	// Terminal: surfaced before any writes.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidTarget means a bookmark's URL failed validation or reachability
	// probing. Per-bookmark, counted as skipped, never terminal.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrFetchFailed means the target page could not be fetched or parsed
	// after validation succeeded. Enrichment is omitted; the bookmark is
	// still stored.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrLLMUnavailable covers a missing key, transport error, non-OK
	// status, empty candidate, or unparseable JSON from the LLM. Triggers
	// a deterministic fallback; never terminal.
	ErrLLMUnavailable = errors.New("llm unavailable")

	// ErrLLMTruncated means the LLM's JSON array closed early. Tolerated by
	// trimming to the last complete element.
	ErrLLMTruncated = errors.New("llm response truncated")

	// ErrStorageConflict means a unique-key clash occurred during insert;
	// callers re-read and switch to update.
	ErrStorageConflict = errors.New("storage conflict")

	// ErrStorageUnavailable is terminal: it aborts the run.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCancelled is a cooperative abort, terminal after the partial
	// session record is written.
	ErrCancelled = errors.New("import cancelled")
)
