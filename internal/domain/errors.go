package domain

import "errors"

var (
	// ErrUnknownCollection signals a collection name outside the registry.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrInvalidRequest signals malformed caller input that cannot be clamped.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable signals that the document store could not answer.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrNotEnabled signals an optional feature that is not configured.
	ErrNotEnabled = errors.New("not enabled")
)
