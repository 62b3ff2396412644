package feed

import "errors"

// Sentinel errors surfaced by the feed subsystem. Handlers map these to
// HTTP status codes at the boundary.
var (
	// ErrInvalidCursor marks a malformed pagination token (bad timestamp
	// or id shape). Distinct from an absent cursor, which is a valid
	// first-page request.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrScopeNotFound marks a feed scope referencing a nonexistent
	// entity (unknown username, post, or comment). Distinct from an
	// empty page, which is a normal success with zero items.
	ErrScopeNotFound = errors.New("scope not found")

	// ErrUnauthenticated marks a viewer-only feed requested anonymously.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConflictExists marks a duplicate like or follow attempt.
	ErrConflictExists = errors.New("already exists")
)
