package feed

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"
)

// LikeChecker reports whether a viewer has liked the contents of a
// likes box. Implemented by the Postgres like repository; tests use
// in-memory fakes.
type LikeChecker interface {
	HasLiked(ctx context.Context, viewerID, likesBoxID string) (bool, error)
}

// Annotated wraps a fetched item with its viewer-relative like flag.
// It marshals as the item's own JSON object with a viewer_like_status
// field merged in.
type Annotated[T Item] struct {
	Item             T
	ViewerLikeStatus bool
}

func (a Annotated[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(a.Item)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	flag, err := json.Marshal(a.ViewerLikeStatus)
	if err != nil {
		return nil, err
	}
	fields["viewer_like_status"] = flag

	return json.Marshal(fields)
}

// annotateConcurrency bounds the like-lookup fan-out per request.
const annotateConcurrency = 8

// Annotate attaches the viewer's like status to each item. An empty
// viewerID means anonymous: every flag is false and the store is never
// queried. Otherwise lookups are dispatched concurrently and joined by
// index, so the fetcher's ordering is never disturbed.
func Annotate[T Item](ctx context.Context, items []T, viewerID string, likes LikeChecker) ([]Annotated[T], error) {
	annotated := make([]Annotated[T], len(items))
	for i := range items {
		annotated[i].Item = items[i]
	}

	if viewerID == "" {
		return annotated, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(annotateConcurrency)
	for i := range items {
		g.Go(func() error {
			liked, err := likes.HasLiked(gctx, viewerID, items[i].ItemLikesBoxID())
			if err != nil {
				return err
			}
			annotated[i].ViewerLikeStatus = liked
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return annotated, nil
}
