package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Call is one recorded gateway invocation.
type Call struct {
	Op    string
	Table string
}

// Memory is an in-process Gateway. Rows are matched by plain equality on the
// filter columns. Failures can be injected per table and operation.
type Memory struct {
	mu       sync.Mutex
	tables   map[string][]Record
	failures map[string]error
	calls    []Call
}

func NewMemory() *Memory {
	return &Memory{
		tables:   make(map[string][]Record),
		failures: make(map[string]error),
	}
}

// Seed appends rows to table without recording a call.
func (m *Memory) Seed(table string, rows ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range rows {
		m.tables[table] = append(m.tables[table], clone(r))
	}
}

// Fail makes every op ("select" or "insert") on table return err.
func (m *Memory) Fail(op, table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failures[op+":"+table] = err
}

func (m *Memory) Rows(table string) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Record, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		out = append(out, clone(r))
	}
	return out
}

func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Memory) SelectOne(ctx context.Context, table string, filter Filter) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "select", Table: table})

	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "select", Table: table, Message: err.Error(), Err: err}
	}
	if err := m.failures["select:"+table]; err != nil {
		return nil, &Error{Op: "select", Table: table, Message: err.Error(), Err: err}
	}
	if len(filter) == 0 {
		return nil, ErrEmptyFilter
	}

	for _, row := range m.tables[table] {
		if matches(row, filter) {
			return clone(row), nil
		}
	}
	return nil, nil
}

func (m *Memory) Insert(ctx context.Context, table string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "insert", Table: table})

	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "insert", Table: table, Message: err.Error(), Err: err}
	}
	if err := m.failures["insert:"+table]; err != nil {
		return nil, &Error{Op: "insert", Table: table, Message: err.Error(), Err: err}
	}
	if len(rec) == 0 {
		return nil, ErrEmptyRecord
	}

	stored := clone(rec)
	m.tables[table] = append(m.tables[table], stored)
	return clone(stored), nil
}

func matches(row Record, filter Filter) bool {
	for col, want := range filter {
		if fmt.Sprint(row[col]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
