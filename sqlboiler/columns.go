package sqlboiler

import (
	"github.com/iancoleman/strcase"
)

// ColumnResolver maps a table column identifier (as used in the query string) to a SQL
// column. Identifiers it rejects cannot be sorted by.
type ColumnResolver func(id string) (column string, ok bool)

// SnakeCaseColumns resolves camelCase identifiers such as "createdAt" to "created_at".
// Anything that is not a plain identifier after conversion is rejected, so a sort key
// taken from a URL is never interpolated into SQL verbatim.
func SnakeCaseColumns(id string) (string, bool) {
	column := strcase.ToSnake(id)
	if !isIdentifier(column) {
		return "", false
	}
	return column, true
}

// ColumnMap resolves only the listed identifiers.
func ColumnMap(columns map[string]string) ColumnResolver {
	return func(id string) (string, bool) {
		column, ok := columns[id]
		return column, ok && column != ""
	}
}

// isIdentifier accepts "name" and "table.name" made of lowercase letters, digits and
// underscores, not starting with a digit.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	start := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.':
			if start || i == len(s)-1 {
				return false
			}
			start = true
			continue
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9':
			if start {
				return false
			}
		default:
			return false
		}
		start = false
	}
	return true
}
