package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStores wires every MongoDB repository onto db.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Users:     NewUserRepo(db),
		Recipes:   NewRecipeRepo(db),
		Blogs:     NewBlogRepo(db),
		Comments:  NewCommentRepo(db),
		Favorites: NewFavoriteRepo(db),
		Ratings:   NewRatingRepo(db),
	}
}

// EnsureIndexes creates the indexes the repositories rely on.  Only the
// user email and username are unique; favorites and ratings get lookup
// indexes without a uniqueness constraint.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		},
		"recipes": {
			{Keys: bson.D{{Key: "privacy", Value: 1}, {Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "commentType", Value: 1}, {Key: "commentId", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		"favorites": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "recipe", Value: 1}}},
		},
		"ratings": {
			{Keys: bson.D{{Key: "recipe", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
