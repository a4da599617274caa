package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
)

// Dialects for the databases Table is used with.
var (
	PostgresDialect = drivers.Dialect{LQ: '"', RQ: '"', UseIndexPlaceholders: true}
	SQLiteDialect   = drivers.Dialect{LQ: '"', RQ: '"'}
)

// Table queries one table into rows of type T without generated models. T must be a
// struct (or pointer to one) whose fields carry `boil:"column"` tags.
type Table[T any] struct {
	Name    string
	Dialect drivers.Dialect
	Exec    boil.ContextExecutor
}

// NewTable creates a Table.
func NewTable[T any](name string, dialect drivers.Dialect, exec boil.ContextExecutor) *Table[T] {
	return &Table[T]{Name: name, Dialect: dialect, Exec: exec}
}

// Query builds a query against the table, selecting every column unless mods select
// something else.
func (t *Table[T]) Query(mods ...qm.QueryMod) *queries.Query {
	from := t.quoted()
	q := &queries.Query{}
	queries.SetDialect(q, &t.Dialect)
	qm.Apply(q, mods...)
	qm.Apply(q, qm.From(from))
	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{from + ".*"})
	}
	return q
}

// All returns the rows matching mods.
func (t *Table[T]) All(ctx context.Context, mods ...qm.QueryMod) ([]T, error) {
	var rows []T
	if err := t.Query(mods...).Bind(ctx, t.Exec, &rows); err != nil {
		return nil, errors.Wrapf(err, "sqlboiler: failed to select from %s", t.Name)
	}
	return rows, nil
}

// Count returns the number of rows matching mods.
func (t *Table[T]) Count(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
	q := t.Query(mods...)
	queries.SetSelect(q, nil)
	queries.SetCount(q)

	var count int64
	if err := q.QueryRowContext(ctx, t.Exec).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "sqlboiler: failed to count %s rows", t.Name)
	}
	return count, nil
}

// Source returns a datatable source over the table.
func (t *Table[T]) Source(opts ...Option) *Source[T] {
	return NewSource(t.All, t.Count, opts...)
}

func (t *Table[T]) quoted() string {
	return string(t.Dialect.LQ) + t.Name + string(t.Dialect.RQ)
}
