package feed

import (
	"context"
	"fmt"

	"github.com/avenmora/lenspark/backend/internal/models"
)

// Kind selects one of the three post-feed variants.
type Kind int

const (
	// Global is every author's posts except the viewer's own.
	Global Kind = iota
	// ByUser is the posts of one author, looked up by username.
	ByUser
	// Following is the posts of the authors the viewer follows.
	// Requires an authenticated viewer.
	Following
)

// Request carries one feed call's inputs. ViewerID is empty for
// anonymous requests; CursorToken is empty for the first page.
type Request struct {
	Kind        Kind
	Username    string // ByUser only
	ViewerID    string
	CursorToken string
	Limit       int
}

// PostSource is the page-fetch contract the post store implements.
// Each method returns posts strictly after the cursor in feed order
// (newest first, ascending id on ties), truncated to limit.
type PostSource interface {
	GlobalPage(ctx context.Context, excludeAuthorID string, cursor *Cursor, limit int) ([]models.Post, error)
	AuthorPage(ctx context.Context, authorID string, cursor *Cursor, limit int) ([]models.Post, error)
	FollowingPage(ctx context.Context, authorIDs []string, cursor *Cursor, limit int) ([]models.Post, error)
}

// UserResolver maps a username to an author id. Implementations return
// an error wrapping ErrScopeNotFound for unknown usernames.
type UserResolver interface {
	UserIDByUsername(ctx context.Context, username string) (string, error)
}

// FollowSource lists the ids a viewer follows.
type FollowSource interface {
	FollowingIDs(ctx context.Context, viewerID string) ([]string, error)
}

// Composer assembles the feed variants on top of the page fetcher and
// the viewer annotator. It is a pure function of store state and
// inputs: repeated calls with the same cursor and no intervening
// writes return identical pages.
type Composer struct {
	posts   PostSource
	users   UserResolver
	follows FollowSource
	likes   LikeChecker
}

// NewComposer creates a Composer over the given collaborators.
func NewComposer(posts PostSource, users UserResolver, follows FollowSource, likes LikeChecker) *Composer {
	return &Composer{posts: posts, users: users, follows: follows, likes: likes}
}

// Feed returns one page of the requested feed variant, annotated with
// the viewer's like status.
func (f *Composer) Feed(ctx context.Context, req Request) (*Page[models.Post], error) {
	limit := ClampLimit(req.Limit)

	var cursor *Cursor
	if req.CursorToken != "" {
		decoded, err := DecodeCursor(req.CursorToken)
		if err != nil {
			return nil, err
		}
		cursor = &decoded
	}

	var (
		posts []models.Post
		err   error
	)
	switch req.Kind {
	case Global:
		posts, err = f.posts.GlobalPage(ctx, req.ViewerID, cursor, limit)
	case ByUser:
		var authorID string
		authorID, err = f.users.UserIDByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		posts, err = f.posts.AuthorPage(ctx, authorID, cursor, limit)
	case Following:
		if req.ViewerID == "" {
			return nil, ErrUnauthenticated
		}
		var followingIDs []string
		followingIDs, err = f.follows.FollowingIDs(ctx, req.ViewerID)
		if err != nil {
			return nil, err
		}
		posts, err = f.posts.FollowingPage(ctx, followingIDs, cursor, limit)
	default:
		return nil, fmt.Errorf("unknown feed kind %d", req.Kind)
	}
	if err != nil {
		return nil, err
	}

	annotated, err := Annotate(ctx, posts, req.ViewerID, f.likes)
	if err != nil {
		return nil, err
	}

	return NewPage(annotated), nil
}
