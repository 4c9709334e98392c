package minbar

import (
	"context"
	"time"

	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
	"github.com/minbar-platform/minbar-search/internal/repository/querystats"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

// --- mixedUseCase mock ---

type mockMixedUC struct {
	searchFn func(ctx context.Context, p searchuc.Params) result.Result
}

func (m *mockMixedUC) Search(ctx context.Context, p searchuc.Params) result.Result {
	return m.searchFn(ctx, p)
}

// --- browseUseCase mock ---

type mockBrowseUC struct {
	browseFn func(ctx context.Context, p searchuc.Params) result.Result
}

func (m *mockBrowseUC) Browse(ctx context.Context, p searchuc.Params) result.Result {
	return m.browseFn(ctx, p)
}

// --- collectionUseCase mock ---

type mockCollectionUC struct {
	searchFn func(ctx context.Context, k collection.Kind, p searchuc.Params) (result.Result, error)
}

func (m *mockCollectionUC) Search(ctx context.Context, k collection.Kind, p searchuc.Params) (result.Result, error) {
	return m.searchFn(ctx, k, p)
}

// --- statsReader mock ---

type mockStats struct {
	topFn func(ctx context.Context, domainID string, day time.Time, limit int) ([]querystats.Entry, error)
}

func (m *mockStats) Top(ctx context.Context, domainID string, day time.Time, limit int) ([]querystats.Entry, error) {
	return m.topFn(ctx, domainID, day, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(
	mixed mixedUseCase,
	browse browseUseCase,
	coll collectionUseCase,
) *Client {
	return &Client{
		mixedSvc:      mixed,
		browseSvc:     browse,
		collectionSvc: coll,
		now:           time.Now,
	}
}
