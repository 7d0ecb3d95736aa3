// Package engine executes parsed queries against datasets.
//
// Execution is a fixed pipeline: copy the table's records, filter by the
// WHERE expression, project the SELECT fields, sort, then apply offset and
// limit. Projection runs before the sort, so ordering by a field outside
// the projection sorts on a missing value (coerced to 0).
package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/parser"
	"github.com/teranos/aton/types"
)

// Engine evaluates parsed queries against in-memory datasets.
type Engine struct {
	logger *zap.SugaredLogger
}

// New creates an Engine that logs through the given logger. A nil logger
// disables logging.
func New(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{logger: log}
}

// Execute runs the query against the dataset without logging. Construct an
// Engine to attach a logger.
func Execute(ds *types.Dataset, q *types.ParsedQuery) ([]*types.Record, error) {
	return New(nil).Execute(ds, q)
}

// Execute applies the query pipeline to the table named by the query. The
// returned slice is freshly allocated, but without a projection the records
// themselves are shared with the dataset.
func (e *Engine) Execute(ds *types.Dataset, q *types.ParsedQuery) ([]*types.Record, error) {
	start := time.Now()

	source, ok := ds.Get(q.Table)
	if !ok {
		qe := parser.NewQueryError(parser.ErrorKindExec, "unknown table "+strconv.Quote(q.Table))
		if tables := ds.Tables(); len(tables) > 0 {
			qe = qe.WithSuggestion("available tables: " + strings.Join(tables, ", "))
		}
		return nil, qe
	}

	records := make([]*types.Record, len(source))
	copy(records, source)

	if q.Where != nil {
		kept := records[:0]
		for _, rec := range records {
			if evaluate(q.Where, rec) {
				kept = append(kept, rec)
			}
		}
		records = kept
	}

	if len(q.Select) > 0 {
		for i, rec := range records {
			records[i] = project(rec, q.Select)
		}
	}

	if q.OrderBy != nil {
		field, desc := q.OrderBy.Field, q.OrderBy.Desc
		sort.SliceStable(records, func(i, j int) bool {
			a, b := sortKey(records[i], field), sortKey(records[j], field)
			if desc {
				return a > b
			}
			return a < b
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(records) {
			records = records[:0]
		} else {
			records = records[q.Offset:]
		}
	}

	if q.Limit != nil {
		n := *q.Limit
		if n < 0 {
			n = 0
		}
		if n < len(records) {
			records = records[:n]
		}
	}

	e.logger.Debugw("query executed",
		logger.FieldTable, q.Table,
		logger.FieldRecords, len(records),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return records, nil
}

// project builds a new record holding only the selected fields that exist
// on the source record, in selection order.
func project(rec *types.Record, fields []string) *types.Record {
	out := types.NewRecord()
	for _, name := range fields {
		if v, ok := rec.Get(name); ok {
			out.Set(name, v)
		}
	}
	return out
}

// sortKey coerces the field numerically; missing or non-numeric sorts as 0.
func sortKey(rec *types.Record, field string) float64 {
	v, ok := rec.Get(field)
	if !ok {
		return 0
	}
	n, _ := v.Num()
	return n
}
