package ingest

import "github.com/pkg/errors"

// Sentinel errors classifying why a single file's ingest failed, so
// callers (the batch coordinator, the CLI) can tell a bad input file
// from a persistence-layer problem. Wrap with errors.Wrap/errors.Cause
// to retain the underlying cause while checking against these with
// errors.Is semantics via the pkg/errors Cause chain.
var (
	// ErrDecode means the file could not be decoded to PCM (missing
	// codec support, corrupt container, unreadable file).
	ErrDecode = errors.New("decode failed")

	// ErrStoreTransient means a Store write failed in a way that may
	// succeed on retry (connection reset, deadlock).
	ErrStoreTransient = errors.New("store write failed (transient)")

	// ErrStorePermanent means a Store write failed in a way retrying
	// will not fix (constraint violation, schema mismatch).
	ErrStorePermanent = errors.New("store write failed (permanent)")
)
