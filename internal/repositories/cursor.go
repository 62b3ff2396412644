package repositories

import (
	"github.com/avenmora/lenspark/backend/internal/feed"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// feedSort is the canonical feed order for every Mongo collection:
// created_at descending, _id ascending on ties.
var feedSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}

// withCursor adds the "strictly after cursor" boundary predicate to a
// scope filter:
//
//	created_at < cursor.created_at OR
//	(created_at == cursor.created_at AND _id > cursor.id)
//
// A nil cursor means first page and leaves the filter untouched.
func withCursor(filter bson.M, cursor *feed.Cursor) bson.M {
	if cursor == nil {
		return filter
	}
	filter["$or"] = []bson.M{
		{"created_at": bson.M{"$lt": cursor.CreatedAt}},
		{"created_at": cursor.CreatedAt, "_id": bson.M{"$gt": cursor.ID}},
	}
	return filter
}

// pageOptions applies the feed sort and the page limit.
func pageOptions(limit int) *options.FindOptions {
	return options.Find().SetSort(feedSort).SetLimit(int64(feed.ClampLimit(limit)))
}
