package health

import "context"

// SearchStore reports document store health.
type SearchStore interface {
	Health(ctx context.Context) error
}

// StatsPinger checks query statistics store connectivity.
type StatsPinger interface {
	Ping(ctx context.Context) error
}
