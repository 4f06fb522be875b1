package pagination

import "strconv"

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Query encapsulates the page/limit preferences shared by every list endpoint.
type Query struct {
	Page  int
	Limit int
}

// Parse builds a Query from raw query-string values. Invalid or missing values
// fall back to the defaults applied by Normalize.
func Parse(page, limit string) Query {
	q := Query{}
	if v, err := strconv.Atoi(page); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(limit); err == nil {
		q.Limit = v
	}
	return q.Normalize()
}

// Normalize returns a sanitized copy applying defaults and bounds.
func (q Query) Normalize() Query {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	if normalized.Limit <= 0 {
		normalized.Limit = defaultLimit
	}
	if normalized.Limit > maxLimit {
		normalized.Limit = maxLimit
	}
	return normalized
}

// Skip converts the page/limit pair into the document offset used by the store.
func (q Query) Skip() int64 {
	normalized := q.Normalize()
	return int64(normalized.Page-1) * int64(normalized.Limit)
}

// TotalPages computes the page count for the given total, never less than zero.
func (q Query) TotalPages(total int64) int {
	normalized := q.Normalize()
	pages := (total + int64(normalized.Limit) - 1) / int64(normalized.Limit)
	return int(pages)
}
