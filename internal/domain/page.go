package domain

// Page is one page of a cursor-paginated query. NextCursor is the maximum
// cursor across Data (0 for an empty page) and is the inclusive lower bound
// for the caller's next request.
type Page[T HasCursor] struct {
	Data       []T   `json:"data"`
	ItemCount  int   `json:"item_count"`
	NextCursor int64 `json:"next_cursor"`
}

// NewPage wraps a query result in a page with its continuation cursor
func NewPage[T HasCursor](data []T) Page[T] {
	return Page[T]{
		Data:       data,
		ItemCount:  len(data),
		NextCursor: MaxCursor(data),
	}
}
