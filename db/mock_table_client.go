package db

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

// MockTableClient keeps tables in memory. It backs tests and the dev environment.
type MockTableClient struct {
	tables   map[string][]Row
	failures map[string]error
	calls    []string
	mu       sync.RWMutex
}

// NewMockTableClient initializes an empty MockTableClient.
func NewMockTableClient() *MockTableClient {
	return &MockTableClient{
		tables:   make(map[string][]Row),
		failures: make(map[string]error),
	}
}

func copyRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Seed appends rows to a table.
func (m *MockTableClient) Seed(table string, rows ...Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.tables[table] = append(m.tables[table], copyRow(r))
	}
}

// FailOn makes every call touching table return err. A nil err clears it.
func (m *MockTableClient) FailOn(table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, table)
		return
	}
	m.failures[table] = err
}

// Rows returns a copy of a table's current rows.
func (m *MockTableClient) Rows(table string) []Row {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Row, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

// Calls lists "op:table" for every call made, in order.
func (m *MockTableClient) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.calls...)
}

func matches(r Row, where Row) bool {
	for col, v := range where {
		if r.String(col) != (Row{col: v}).String(col) {
			return false
		}
	}
	return true
}

// compareValues orders numerically when both sides parse as numbers.
func compareValues(a, b Row, col string) int {
	as, bs := a.String(col), b.String(col)
	af, aerr := strconv.ParseFloat(as, 64)
	bf, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func (m *MockTableClient) Select(ctx context.Context, q SelectQuery) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "select:"+q.Table)
	if err, ok := m.failures[q.Table]; ok {
		return nil, err
	}

	matched := []Row{}
	for _, r := range m.tables[q.Table] {
		if matches(r, q.Eq) {
			matched = append(matched, r)
		}
	}

	if len(q.Order) > 0 {
		// sort on the full rows so ordering columns need not be selected
		sort.SliceStable(matched, func(i, j int) bool {
			for _, o := range q.Order {
				c := compareValues(matched[i], matched[j], o.Column)
				if c == 0 {
					continue
				}
				if o.Descending {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	out := make([]Row, 0, len(matched))
	for _, r := range matched {
		if len(q.Columns) == 0 {
			out = append(out, copyRow(r))
			continue
		}
		projected := make(Row, len(q.Columns))
		for _, c := range q.Columns {
			projected[c] = r[c]
		}
		out = append(out, projected)
	}
	return out, nil
}

func (m *MockTableClient) Insert(ctx context.Context, table string, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "insert:"+table)
	if err, ok := m.failures[table]; ok {
		return err
	}
	m.tables[table] = append(m.tables[table], copyRow(row))
	return nil
}

func (m *MockTableClient) Update(ctx context.Context, table string, values Row, where Row) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "update:"+table)
	if err, ok := m.failures[table]; ok {
		return nil, err
	}
	if len(where) == 0 {
		return nil, fmt.Errorf("refusing to update every row of %s", table)
	}

	out := []Row{}
	for i, r := range m.tables[table] {
		if !matches(r, where) {
			continue
		}
		for k, v := range values {
			r[k] = v
		}
		m.tables[table][i] = r
		out = append(out, copyRow(r))
	}
	return out, nil
}

// Ping simulates a store ping.
func (m *MockTableClient) Ping() error {
	log.Debug("MockTableClient: Ping successful")
	return nil
}
