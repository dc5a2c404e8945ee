package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodcourt-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type postgres struct {
	db *sql.DB
}

// NewPostgres returns a Gateway backed by a postgres database.
func NewPostgres(db *sql.DB) Gateway {
	return &postgres{db: db}
}

func (p *postgres) SelectOne(ctx context.Context, table string, filter Filter) (Record, error) {
	log := logger.For(ctx, "gateway", "SelectOne").With(zap.String("table", table))

	if len(filter) == 0 {
		return nil, ErrEmptyFilter
	}
	if !validIdent(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}

	cols := filter.Columns()
	where := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		if !validIdent(col) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, col)
		}
		where = append(where, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), i+1))
		args = append(args, filter[col])
	}

	query := `SELECT * FROM ` + pq.QuoteIdentifier(table) +
		` WHERE ` + strings.Join(where, " AND ") +
		` LIMIT 1`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("select failed", zap.Error(err))
		return nil, wrap("select", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			log.Error("rows iteration failed", zap.Error(err))
			return nil, wrap("select", table, err)
		}
		log.Debug("no matching record")
		return nil, nil
	}

	rec, err := scanRecord(rows)
	if err != nil {
		log.Error("row scan failed", zap.Error(err))
		return nil, wrap("select", table, err)
	}

	return rec, nil
}

func (p *postgres) Insert(ctx context.Context, table string, rec Record) (Record, error) {
	log := logger.For(ctx, "gateway", "Insert").With(zap.String("table", table))

	if len(rec) == 0 {
		return nil, ErrEmptyRecord
	}
	if !validIdent(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}

	cols := sortedKeys(rec)
	quoted := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		if !validIdent(col) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, col)
		}
		quoted = append(quoted, pq.QuoteIdentifier(col))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, rec[col])
	}

	query := `INSERT INTO ` + pq.QuoteIdentifier(table) +
		` (` + strings.Join(quoted, ", ") + `)` +
		` VALUES (` + strings.Join(placeholders, ", ") + `)` +
		` RETURNING *`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, wrap("insert", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		err := rows.Err()
		if err == nil {
			err = errors.New("insert returned no row")
		}
		log.Error("insert returned no row", zap.Error(err))
		return nil, wrap("insert", table, err)
	}

	stored, err := scanRecord(rows)
	if err != nil {
		log.Error("row scan failed", zap.Error(err))
		return nil, wrap("insert", table, err)
	}

	log.Info("record inserted", zap.Int("columns", len(stored)))
	return stored, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	rec := make(Record, len(cols))
	for i, col := range cols {
		if b, ok := values[i].([]byte); ok {
			rec[col] = string(b)
			continue
		}
		rec[col] = values[i]
	}
	return rec, nil
}

// wrap turns a driver error into *Error, keeping the backend message as is.
func wrap(op, table string, err error) error {
	gwErr := &Error{Op: op, Table: table, Message: err.Error(), Err: err}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		gwErr.Code = string(pqErr.Code)
		gwErr.Message = pqErr.Message
	}
	return gwErr
}
