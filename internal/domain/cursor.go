package domain

// HasCursor is implemented by every aggregate that supports cursor pagination.
// The cursor is a monotonically increasing value derived from the entity's
// last-modified timestamp; it is a continuation token, never a primary key.
type HasCursor interface {
	GetCursor() int64
}

// MaxCursor returns the maximum cursor across the collection, or 0 when the
// collection is empty. The result is the next_cursor handed back to callers
// of paginated queries. Ties are allowed; callers treat the value as an
// inclusive lower bound on the next page request.
func MaxCursor[T HasCursor](items []T) int64 {
	var max int64
	for _, item := range items {
		if c := item.GetCursor(); c > max {
			max = c
		}
	}
	return max
}
