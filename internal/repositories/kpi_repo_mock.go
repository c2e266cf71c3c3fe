package repositories

import (
	"context"
	"sort"
	"sync"

	"ecommerce-analytics/internal/models"
)

// MockKPIRepository is an in-memory implementation of KPIRepository.
type MockKPIRepository struct {
	rows  []models.ProductKPI
	err   error
	calls int
	mu    sync.RWMutex
}

// NewMockKPIRepository creates a new instance of MockKPIRepository holding rows.
func NewMockKPIRepository(rows ...models.ProductKPI) *MockKPIRepository {
	r := &MockKPIRepository{}
	r.SetRows(rows)
	return r
}

// FetchAll returns a copy of the stored rows in view order, or the configured error.
func (r *MockKPIRepository) FetchAll(ctx context.Context) ([]models.ProductKPI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	rows := make([]models.ProductKPI, len(r.rows))
	copy(rows, r.rows)
	return rows, nil
}

// SetRows replaces the stored rows.
func (r *MockKPIRepository) SetRows(rows []models.ProductKPI) {
	sorted := make([]models.ProductKPI, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].OrderMonth.Equal(sorted[j].OrderMonth) {
			return sorted[i].OrderMonth.After(sorted[j].OrderMonth)
		}
		return sorted[i].TotalRevenue > sorted[j].TotalRevenue
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = sorted
}

// SetError makes every following FetchAll fail with err; nil clears it.
func (r *MockKPIRepository) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls reports how many times FetchAll reached the repository.
func (r *MockKPIRepository) Calls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}
