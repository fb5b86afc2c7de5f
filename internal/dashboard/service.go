package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/funnelboard/funnelboard/internal/funnel"
)

// Overview bundles the live counts and conversion rates for one employee.
type Overview struct {
	Employee string
	Counts   funnel.StageCounts
	Rates    funnel.Rates
}

// Service serves dashboard data from the immutable dataset, routing the
// monthly history through an optional Redis snapshot cache.
type Service struct {
	dataset *funnel.Dataset
	cache   *Cache
	history singleflight.Group
	now     func() time.Time
}

// NewService wires the dataset with a cache helper. The cache may be nil.
func NewService(dataset *funnel.Dataset, cache *Cache) *Service {
	return &Service{
		dataset: dataset,
		cache:   cache,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Dataset exposes the shared dataset.
func (s *Service) Dataset() *funnel.Dataset {
	return s.dataset
}

// Counts returns the funnel counts for an employee, normalizing unknown
// identifiers to the aggregate. No I/O is involved.
func (s *Service) Counts(employee string) funnel.StageCounts {
	return s.dataset.Counts(employee)
}

// GetOverview derives the live KPI view for an employee.
func (s *Service) GetOverview(employee string) Overview {
	employee = funnel.ParseEmployee(employee)
	counts := s.dataset.Counts(employee)
	return Overview{
		Employee: employee,
		Counts:   counts,
		Rates:    funnel.ComputeRates(counts),
	}
}

// GetHistory returns the monthly history for an employee, anchored at the
// current month.
func (s *Service) GetHistory(ctx context.Context, employee string) ([]funnel.MonthlyKpiRow, error) {
	return s.GetHistoryAt(ctx, employee, s.now())
}

// GetHistoryAt returns the monthly history ending at the anchor's month.
// Results are cached per (employee, anchor month); the anchor month inside
// the key makes month rollover invalidate naturally. Concurrent misses for
// the same key collapse through singleflight.
func (s *Service) GetHistoryAt(ctx context.Context, employee string, anchor time.Time) ([]funnel.MonthlyKpiRow, error) {
	employee = funnel.ParseEmployee(employee)
	anchor = funnel.FirstOfMonth(anchor)
	key := s.cache.BuildKey("funnel", "history", employee, anchor.Format("2006-01"))

	result, err, _ := s.singleflightHistory(ctx, key, func(ctx context.Context) ([]funnel.MonthlyKpiRow, error) {
		var rows []funnel.MonthlyKpiRow
		err := s.cache.FetchJSON(ctx, key, &rows, func(context.Context) (interface{}, error) {
			return s.dataset.HistoryFor(employee, anchor), nil
		})
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: load history for %s: %w", employee, err)
	}
	return result, nil
}

func (s *Service) singleflightHistory(ctx context.Context, key string, fn func(context.Context) ([]funnel.MonthlyKpiRow, error)) ([]funnel.MonthlyKpiRow, error, bool) {
	resultChan := s.history.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		rows, _ := res.Val.([]funnel.MonthlyKpiRow)
		return rows, res.Err, res.Shared
	}
}
