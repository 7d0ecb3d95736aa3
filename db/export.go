package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/types"
)

// Exporter reads tables from a SQL database into datasets. Column order is
// preserved, so the encoded output keeps the table's declared layout.
type Exporter struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewExporter creates an exporter over an open database handle.
func NewExporter(db *sql.DB) *Exporter {
	return &Exporter{db: db, log: zap.NewNop().Sugar()}
}

// WithLogger sets the logger used for export progress.
func (e *Exporter) WithLogger(log *zap.SugaredLogger) *Exporter {
	if log != nil {
		e.log = log
	}
	return e
}

// Tables lists the user tables in the database, excluding SQLite internals.
func (e *Exporter) Tables(ctx context.Context) ([]string, error) {
	rows, err := e.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	return tables, nil
}

// Export reads the named tables into a dataset. With no names it exports
// every user table.
func (e *Exporter) Export(ctx context.Context, tables ...string) (*types.Dataset, error) {
	if len(tables) == 0 {
		all, err := e.Tables(ctx)
		if err != nil {
			return nil, err
		}
		tables = all
	}

	ds := types.NewDataset()
	for _, table := range tables {
		records, err := e.exportTable(ctx, table)
		if err != nil {
			return nil, err
		}
		ds.Set(table, records)
		e.log.Debugw("table exported",
			logger.FieldTable, table,
			logger.FieldRecords, len(records),
		)
	}
	return ds, nil
}

func (e *Exporter) exportTable(ctx context.Context, table string) ([]*types.Record, error) {
	rows, err := e.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read table %q", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read columns of table %q", table)
	}

	var records []*types.Record
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "failed to scan row %d of table %q", len(records), table)
		}
		rec := types.NewRecord()
		for i, col := range cols {
			rec.Set(col, sqlValue(values[i]))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read table %q", table)
	}
	return records, nil
}

// quoteIdent quotes a table name for interpolation; identifiers cannot be
// bound as query parameters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqlValue maps a driver value onto a dataset value. Integral REALs
// collapse to ints the way every other ingestion path normalizes them,
// BLOBs come through as raw strings, and DATETIME columns the driver
// parsed render as RFC 3339 text.
func sqlValue(v any) types.Value {
	switch t := v.(type) {
	case nil:
		return types.Null()
	case int64:
		return types.Int(t)
	case float64:
		return types.Number(t)
	case bool:
		return types.Bool(t)
	case string:
		return types.String(t)
	case []byte:
		return types.String(string(t))
	case time.Time:
		return types.String(t.Format(time.RFC3339))
	default:
		return types.String(fmt.Sprint(t))
	}
}
