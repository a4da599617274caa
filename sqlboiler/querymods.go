package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
)

// Params is one page request in SQL terms.
type Params struct {
	Offset  int
	Limit   int
	OrderBy []OrderBy
}

// OrderBy is one ORDER BY term. Column is trusted SQL and must come from a resolver.
type OrderBy struct {
	Column string
	Desc   bool
}

// String renders the term with the column quoted, e.g. `"created_at" DESC`. Both
// PostgreSQL and SQLite accept double-quoted identifiers.
func (o OrderBy) String() string {
	column := strmangle.IdentQuote('"', '"', o.Column)
	if o.Desc {
		return column + " DESC"
	}
	return column
}

// QueryMods returns the OFFSET, LIMIT and ORDER BY mods of the page, leaving out the
// ones that are zero or empty.
func (p Params) QueryMods() []qm.QueryMod {
	var mods []qm.QueryMod
	if p.Offset > 0 {
		mods = append(mods, qm.Offset(p.Offset))
	}
	if p.Limit > 0 {
		mods = append(mods, qm.Limit(p.Limit))
	}
	if clause := OrderByClause(p.OrderBy); clause != "" {
		mods = append(mods, qm.OrderBy(clause))
	}
	return mods
}

// OrderByClause joins the terms, e.g. `"score" DESC, "id" DESC`.
func OrderByClause(terms []OrderBy) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
