package health

import "context"

// ServiceName is reported by every health check.
const ServiceName = "RAG Service"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "healthy"
	// Degraded indicates an optional component failed; queries still work.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Service string
	Checks  map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	components map[string]Pinger
}

// New creates a Service with no component checks.
func New() *Service {
	return &Service{components: make(map[string]Pinger)}
}

// WithComponent registers a named component to ping. A nil pinger is ignored.
func (s *Service) WithComponent(name string, p Pinger) *Service {
	if p != nil {
		s.components[name] = p
	}
	return s
}

// Check pings every registered component. The document pipeline itself has
// no dependencies, so a service without components is always healthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	status := Healthy

	for name, p := range s.components {
		if err := p.Ping(ctx); err != nil {
			checks[name] = CheckError
			status = Degraded
			continue
		}
		checks[name] = CheckOK
	}

	return Report{Status: status, Service: ServiceName, Checks: checks}
}
