package feed

import "encoding/json"

// DefaultLimit is the system ceiling on a single page. Requests without
// an explicit limit, and "unbounded" first-page reads (e.g. comments
// without a cursor), are still capped here.
const DefaultLimit = 100

// ClampLimit bounds a requested page size to [1, DefaultLimit].
// Zero or negative means the caller did not ask, so the default applies.
func ClampLimit(limit int) int {
	if limit < 1 || limit > DefaultLimit {
		return DefaultLimit
	}
	return limit
}

// NextCursor is the resume token returned with a page. The empty value
// marshals as JSON false, the sentinel for "no more pages" — the type,
// not a magic value, distinguishes it from a real token.
type NextCursor string

func (n NextCursor) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(n))
}

// Page is one resumable slice of a feed: annotated items in descending
// feed order plus the cursor that continues after them.
type Page[T Item] struct {
	Items      []Annotated[T]
	NextCursor NextCursor
}

// NewPage builds a page from annotated items, encoding the next cursor
// from the last returned item. An empty item slice yields the
// no-more-pages sentinel.
func NewPage[T Item](items []Annotated[T]) *Page[T] {
	page := &Page[T]{Items: items}
	if len(items) > 0 {
		last := items[len(items)-1].Item
		page.NextCursor = NextCursor(EncodeCursor(last.ItemCreatedAt(), last.ItemID()))
	}
	return page
}
