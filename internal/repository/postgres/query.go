package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

type columnKind int

const (
	kindText columnKind = iota
	kindFlag
	kindInt
	kindTime
)

type column struct {
	name string
	kind columnKind
}

// table maps a record's wire field names onto its columns. Only fields listed
// here may be filtered or sorted on.
type table struct {
	name    string
	selects string
	fields  map[string]column
}

func (t table) column(field string) (column, error) {
	col, ok := t.fields[field]
	if !ok {
		return column{}, fmt.Errorf("%s: unknown field %q", t.name, field)
	}
	return col, nil
}

// buildList renders a SELECT for q. Scalar where values compare for equality
// and []string values match any entry.
func buildList(t table, q domain.ListQuery) (string, []any, error) {
	var builder strings.Builder
	builder.WriteString("SELECT ")
	builder.WriteString(t.selects)
	builder.WriteString(" FROM ")
	builder.WriteString(t.name)

	args := make([]any, 0, len(q.Where)+1)
	if len(q.Where) > 0 {
		keys := make([]string, 0, len(q.Where))
		for key := range q.Where {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		clauses := make([]string, 0, len(keys))
		for _, key := range keys {
			col, err := t.column(key)
			if err != nil {
				return "", nil, err
			}
			placeholder := fmt.Sprintf("$%d", len(args)+1)
			switch value := q.Where[key].(type) {
			case []string:
				clauses = append(clauses, col.name+" = ANY("+placeholder+")")
				args = append(args, pq.Array(value))
			case domain.StringList:
				clauses = append(clauses, col.name+" = ANY("+placeholder+")")
				args = append(args, pq.Array([]string(value)))
			default:
				converted, err := whereValue(col, value)
				if err != nil {
					return "", nil, fmt.Errorf("%s.%s: %w", t.name, key, err)
				}
				clauses = append(clauses, col.name+" = "+placeholder)
				args = append(args, converted)
			}
		}
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(clauses, " AND "))
	}

	if len(q.OrderBy) > 0 {
		parts := make([]string, 0, len(q.OrderBy))
		for _, order := range q.OrderBy {
			col, err := t.column(order.Field)
			if err != nil {
				return "", nil, err
			}
			dir := "ASC"
			if order.Direction == domain.SortDesc {
				dir = "DESC"
			}
			parts = append(parts, col.name+" "+dir)
		}
		builder.WriteString(" ORDER BY ")
		builder.WriteString(strings.Join(parts, ", "))
	}

	if q.Limit > 0 {
		builder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)+1))
		args = append(args, q.Limit)
	}
	return builder.String(), args, nil
}

func whereValue(col column, value any) (any, error) {
	if col.kind != kindFlag {
		return value, nil
	}
	switch v := value.(type) {
	case domain.Flag:
		return bool(v), nil
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	}
	var flag domain.Flag
	if err := flag.Scan(fmt.Sprint(value)); err != nil {
		return nil, err
	}
	return bool(flag), nil
}
