package chi

import (
	"context"
	"time"

	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
	"github.com/minbar-platform/minbar-search/internal/repository/querystats"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

// CollectionSearcher searches a single collection.
type CollectionSearcher interface {
	Search(ctx context.Context, k collection.Kind, p searchuc.Params) (result.Result, error)
}

// Browser returns the top documents of every selected collection.
type Browser interface {
	Browse(ctx context.Context, p searchuc.Params) result.Result
}

// MixedSearcher ranks one query across the selected collections.
type MixedSearcher interface {
	Search(ctx context.Context, p searchuc.Params) result.Result
}

// PopularQueries reads daily query statistics.
type PopularQueries interface {
	Top(ctx context.Context, domainID string, day time.Time, limit int) ([]querystats.Entry, error)
	Total(ctx context.Context, domainID string, day time.Time) (int64, error)
}

// HealthChecker reports aggregated component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
