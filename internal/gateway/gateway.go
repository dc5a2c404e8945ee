// Package gateway is the boundary to the hosted backend: table-style reads and
// inserts returning either a record or a typed *Error.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Record is one row keyed by column name.
type Record map[string]any

// String returns the column as a string, or "" when absent or nil.
func (r Record) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Filter is a set of column = value conditions joined with AND.
type Filter map[string]any

func Eq(col string, value any) Filter {
	return Filter{col: value}
}

// Columns returns the filter columns in a stable order.
func (f Filter) Columns() []string {
	return sortedKeys(f)
}

type Gateway interface {
	// SelectOne returns the first matching record, or nil when none matches.
	SelectOne(ctx context.Context, table string, filter Filter) (Record, error)
	// Insert stores rec and returns the stored row.
	Insert(ctx context.Context, table string, rec Record) (Record, error)
}

var (
	ErrInvalidIdentifier = errors.New("invalid table or column name")
	ErrEmptyFilter       = errors.New("filter must have at least one condition")
	ErrEmptyRecord       = errors.New("record must have at least one column")
)

// Error is a failed backend call. Message is the backend's own text.
type Error struct {
	Op      string
	Table   string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdent(name string) bool {
	return identRe.MatchString(name)
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
