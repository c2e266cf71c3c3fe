package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/metrics"
	"ecommerce-analytics/internal/models"
	"ecommerce-analytics/internal/repositories"
	"ecommerce-analytics/pkg/rabbitmq"
)

// DefaultCacheTTL is how long a loaded dataset is served before it is reloaded.
const DefaultCacheTTL = 10 * time.Minute

const loadKey = "kpis"

// ErrInvalidMonth is returned for a month that is not in YYYY-MM form.
var ErrInvalidMonth = errors.New("invalid month")

// MonthOption is one entry of the month selector.
type MonthOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Filters lists the selectable months (newest first) and categories.
type Filters struct {
	Months       []MonthOption `json:"months"`
	Categories   []string      `json:"categories"`
	DefaultMonth string        `json:"default_month,omitempty"`
	Warning      string        `json:"warning,omitempty"`
}

// CacheStatus describes the cached dataset.
type CacheStatus struct {
	Loaded   bool      `json:"loaded"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// DashboardService serves the reporting dataset from a process-wide cache.
// The cached slice is replaced, never modified, so callers must treat the
// rows they receive as read-only.
type DashboardService struct {
	repo repositories.KPIRepository
	ttl  time.Duration
	now  func() time.Time

	mu         sync.RWMutex
	rows       []models.ProductKPI
	loadedAt   time.Time
	loaded     bool
	generation uint64

	group singleflight.Group
}

// NewDashboardService creates a DashboardService. A non-positive ttl uses DefaultCacheTTL.
func NewDashboardService(repo repositories.KPIRepository, ttl time.Duration) *DashboardService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &DashboardService{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// SetClock replaces the time source used for cache expiry.
func (s *DashboardService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *DashboardService) cached() ([]models.ProductKPI, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loaded && s.now().Sub(s.loadedAt) < s.ttl {
		return s.rows, s.generation, true
	}
	return nil, s.generation, false
}

func (s *DashboardService) store(rows []models.ProductKPI, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// An invalidation raced with this load; drop the result.
	if generation != s.generation {
		return
	}
	s.rows = rows
	s.loadedAt = s.now()
	s.loaded = true
}

// Data returns every reporting row. On a failed load it returns no rows and a
// warning for the user; failures are not cached, so the next call retries.
// The shared load runs detached from ctx, so one caller giving up does not fail
// the others waiting on it; that caller alone returns with ctx's error.
func (s *DashboardService) Data(ctx context.Context) ([]models.ProductKPI, string) {
	if rows, _, ok := s.cached(); ok {
		metrics.RecordCacheHit()
		return rows, ""
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(loadKey, func() (interface{}, error) {
		rows, generation, ok := s.cached()
		if ok {
			return rows, nil
		}
		rows, err := s.repo.FetchAll(loadCtx)
		metrics.RecordDatasetLoad(err == nil, len(rows))
		if err != nil {
			log.Printf("Error loading data from %s: %v", models.KPIViewName, err)
			return nil, err
		}
		log.Printf("Loaded %d rows from %s", len(rows), models.KPIViewName)
		s.store(rows, generation)
		return rows, nil
	})

	select {
	case <-ctx.Done():
		return []models.ProductKPI{}, loadWarning(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return []models.ProductKPI{}, loadWarning(res.Err)
		}
		return res.Val.([]models.ProductKPI), ""
	}
}

func loadWarning(err error) string {
	return fmt.Sprintf("Error loading data from the database: %v", err)
}

// Invalidate drops the cached dataset. An in-flight load is detached, so the
// next Data call queries the database again.
func (s *DashboardService) Invalidate() {
	s.mu.Lock()
	s.rows = nil
	s.loaded = false
	s.loadedAt = time.Time{}
	s.generation++
	s.mu.Unlock()

	s.group.Forget(loadKey)
	metrics.RecordCacheCleared()
}

// Reload invalidates the cache and loads the dataset again.
func (s *DashboardService) Reload(ctx context.Context) ([]models.ProductKPI, string) {
	s.Invalidate()
	return s.Data(ctx)
}

// Status reports what the cache currently holds.
func (s *DashboardService) Status() CacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CacheStatus{
		Loaded:   s.loaded,
		Rows:     len(s.rows),
		LoadedAt: s.loadedAt,
	}
}

// HandleDataLoaded invalidates the cache when a seed run commits.
func (s *DashboardService) HandleDataLoaded(event rabbitmq.DataLoadedEvent) error {
	log.Printf("Data loaded by run %s (%d scripts), clearing dashboard cache", event.RunID, len(event.Files))
	s.Invalidate()
	return nil
}

// Filters returns the month and category choices for the current dataset.
func (s *DashboardService) Filters(ctx context.Context) Filters {
	rows, warning := s.Data(ctx)
	return filtersFor(rows, warning)
}

func filtersFor(rows []models.ProductKPI, warning string) Filters {
	months := analytics.AvailableMonths(rows)

	filters := Filters{
		Months:     make([]MonthOption, 0, len(months)),
		Categories: analytics.AvailableCategories(rows),
		Warning:    warning,
	}
	for _, m := range months {
		filters.Months = append(filters.Months, MonthOption{Key: analytics.MonthKey(m), Label: analytics.MonthLabel(m)})
	}
	if len(filters.Months) > 0 {
		filters.DefaultMonth = filters.Months[0].Key
	}
	return filters
}

func parseMonthKey(monthKey string) (time.Time, error) {
	if monthKey == "" {
		return time.Time{}, nil
	}
	month, err := analytics.ParseMonth(monthKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM", ErrInvalidMonth, monthKey)
	}
	return month, nil
}

// Report builds the dashboard report for monthKey (YYYY-MM) and category. An
// empty monthKey selects the newest month in the dataset, or the current month
// when there is no data. An empty category means all categories.
func (s *DashboardService) Report(ctx context.Context, monthKey, category string) (analytics.Report, string, error) {
	month, err := parseMonthKey(monthKey)
	if err != nil {
		return analytics.Report{}, "", err
	}
	rows, warning := s.Data(ctx)
	return s.reportFor(rows, month, category), warning, nil
}

// Page returns the filters and the report from a single dataset load, so both
// agree and a failing database is queried once per page view.
func (s *DashboardService) Page(ctx context.Context, monthKey, category string) (Filters, analytics.Report, string, error) {
	month, err := parseMonthKey(monthKey)
	if err != nil {
		return Filters{}, analytics.Report{}, "", err
	}
	rows, warning := s.Data(ctx)
	return filtersFor(rows, warning), s.reportFor(rows, month, category), warning, nil
}

func (s *DashboardService) reportFor(rows []models.ProductKPI, month time.Time, category string) analytics.Report {
	if month.IsZero() {
		if months := analytics.AvailableMonths(rows); len(months) > 0 {
			month = months[0]
		} else {
			s.mu.RLock()
			now := s.now().UTC()
			s.mu.RUnlock()
			month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
	return analytics.BuildReport(rows, month, category)
}
