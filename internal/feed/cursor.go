package feed

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// A Cursor marks the last item a client has seen, as the pair of its
// ordering keys. It round-trips losslessly through Encode/DecodeCursor.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

const cursorSeparator = "_"

// tokenTimeLayout matches JavaScript's Date.toISOString(): millisecond
// precision, always UTC. Neither an ISO timestamp nor a UUID contains
// an underscore, so the separator is unambiguous.
const tokenTimeLayout = "2006-01-02T15:04:05.000Z"

var uuidPattern = regexp.MustCompile(
	`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-5][0-9a-f]{3}-[089ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// EncodeCursor serializes an ordering key pair into an opaque token of
// the form "<ISO-8601 timestamp>_<id>".
func EncodeCursor(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(tokenTimeLayout) + cursorSeparator + id
}

// DecodeCursor parses a token produced by EncodeCursor. It returns
// ErrInvalidCursor when the timestamp is not well-formed ISO-8601 or
// the id is not a well-formed UUID.
func DecodeCursor(token string) (Cursor, error) {
	stamp, id, found := strings.Cut(token, cursorSeparator)
	if !found {
		return Cursor{}, fmt.Errorf("%w: missing separator", ErrInvalidCursor)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: bad timestamp %q", ErrInvalidCursor, stamp)
	}

	if !uuidPattern.MatchString(id) {
		return Cursor{}, fmt.Errorf("%w: bad id %q", ErrInvalidCursor, id)
	}

	return Cursor{CreatedAt: createdAt, ID: id}, nil
}

// Encode serializes the cursor back into its token form.
func (c Cursor) Encode() string {
	return EncodeCursor(c.CreatedAt, c.ID)
}
