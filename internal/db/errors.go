package db

import "errors"

// Error kinds surfaced by the store. Callers distinguish them with errors.Is;
// the underlying pg error is wrapped for logging but never shown to API callers.
var (
	// ErrNotFound means no entity matched the query.
	ErrNotFound = errors.New("entity does not exist")

	// ErrDuplicateCurrent means more than one template is marked current for a
	// single (name, resourceType, parent) key. This is a data-integrity
	// violation, not a user error — the read path surfaces it rather than
	// silently picking one row.
	ErrDuplicateCurrent = errors.New("duplicate current template for key")

	// ErrVersionConflict means a template with the same (name, version) is
	// already registered.
	ErrVersionConflict = errors.New("template version already exists")

	// ErrStoreUnavailable means the underlying store was unreachable or
	// failed in a way the caller can only retry.
	ErrStoreUnavailable = errors.New("state store unavailable")
)
