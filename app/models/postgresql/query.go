package models

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// PaginationQuery is the ?limit=&offset= pair accepted by list endpoints.
type PaginationQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize applies the default and upper bound on Limit and clamps Offset.
func (q *PaginationQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}
