package minbar

import "github.com/minbar-platform/minbar-search/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnknownCollection = domain.ErrUnknownCollection
	ErrNotEnabled        = domain.ErrNotEnabled
)
