package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
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

// ErrNoWells is returned by WellsLoaded when the collection is empty.
var ErrNoWells = errors.New("no wells loaded")

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	names  []string
	checks map[string]Checker
}

// New creates a Service over named checkers. Nil checkers are skipped.
func New(checks map[string]Checker) *Service {
	s := &Service{checks: make(map[string]Checker, len(checks))}
	for name, c := range checks {
		if c == nil {
			continue
		}
		s.names = append(s.names, name)
		s.checks[name] = c
	}
	sort.Strings(s.names)
	return s
}

// Check runs every checker. No failures is Healthy, some is Degraded and all
// is Unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.names))
	failed := 0
	for _, name := range s.names {
		if err := s.checks[name].Check(ctx); err != nil {
			checks[name] = CheckError
			failed++
		} else {
			checks[name] = CheckOK
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(s.names):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

// WellsLoaded fails when the served collection is empty, which usually means
// the county filter matched nothing.
func WellsLoaded(count func() int) Checker {
	return CheckerFunc(func(context.Context) error {
		if count() == 0 {
			return ErrNoWells
		}
		return nil
	})
}

// SnapshotPresent fails when the merged snapshot at path cannot be stat'ed.
func SnapshotPresent(path string) Checker {
	return CheckerFunc(func(context.Context) error {
		if _, err := os.Stat(filepath.Clean(path)); err != nil {
			return fmt.Errorf("merged snapshot: %w", err)
		}
		return nil
	})
}
