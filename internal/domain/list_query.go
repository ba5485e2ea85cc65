package domain

// SortDirection orders list results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Order is a single sort key of a collection listing, keyed by the record's
// wire field name (for example "createdAt").
type Order struct {
	Field     string
	Direction SortDirection
}

// ListQuery is the filter/sort/limit triple accepted by every collection.
// Where values are matched for equality; a []string value matches any of
// its entries.
type ListQuery struct {
	Where   map[string]any
	OrderBy []Order
	Limit   int
}

func NewListQuery() ListQuery {
	return ListQuery{Where: map[string]any{}}
}

func (q ListQuery) WhereEq(field string, value any) ListQuery {
	where := make(map[string]any, len(q.Where)+1)
	for k, v := range q.Where {
		where[k] = v
	}
	where[field] = value
	q.Where = where
	return q
}

func (q ListQuery) Sort(field string, direction SortDirection) ListQuery {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field, Direction: direction})
	return q
}

func (q ListQuery) WithLimit(limit int) ListQuery {
	q.Limit = limit
	return q
}
