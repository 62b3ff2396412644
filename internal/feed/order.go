package feed

import (
	"sort"
	"time"
)

// Item is the ordering-relevant subset every paginated entity (post,
// comment, reply) exposes. CreatedAt alone is not unique under
// same-millisecond writes, so the id is the tiebreaker that makes the
// order total and pagination stable.
type Item interface {
	ItemID() string
	ItemCreatedAt() time.Time
	ItemLikesBoxID() string
}

// Less reports whether a sorts before b in feed order: newest first,
// ascending id on timestamp ties.
func Less(a, b Item) bool {
	at, bt := a.ItemCreatedAt(), b.ItemCreatedAt()
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return a.ItemID() < b.ItemID()
}

// Sort orders items in place per Less.
func Sort[T Item](items []T) {
	sort.Slice(items, func(i, j int) bool { return Less(items[i], items[j]) })
}

// Precedes reports whether item lies strictly after the cursor in feed
// order, i.e. whether it belongs on the page the cursor resumes. This
// is the exact predicate the store queries must implement:
//
//	createdAt < cursor.createdAt OR
//	(createdAt == cursor.createdAt AND id > cursor.id)
func (c Cursor) Precedes(item Item) bool {
	t := item.ItemCreatedAt()
	if t.Before(c.CreatedAt) {
		return true
	}
	return t.Equal(c.CreatedAt) && item.ItemID() > c.ID
}
