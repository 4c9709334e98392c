package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates that search works but an optional component is down.
	Degraded Status = "degraded"
	// Unhealthy indicates that the document store is down.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentTypesense = "typesense"
	ComponentRedis     = "redis"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store SearchStore
	stats StatsPinger
}

// New creates a Service. stats can be nil when query statistics are disabled.
func New(store SearchStore, stats StatsPinger) *Service {
	return &Service{store: store, stats: stats}
}

// Check runs health checks against all components. A failing document store
// makes the report unhealthy; a failing stats store only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	if err := s.store.Health(ctx); err != nil {
		checks[ComponentTypesense] = CheckError
		status = Unhealthy
	} else {
		checks[ComponentTypesense] = CheckOK
	}

	if s.stats != nil {
		if err := s.stats.Ping(ctx); err != nil {
			checks[ComponentRedis] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[ComponentRedis] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
