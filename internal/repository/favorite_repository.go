package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// FavoriteRepo persists favorites in the `favorites` collection.
type FavoriteRepo struct{ coll *mongo.Collection }

func NewFavoriteRepo(db *mongo.Database) *FavoriteRepo {
	return &FavoriteRepo{coll: db.Collection("favorites")}
}

func (r *FavoriteRepo) Find(ctx context.Context, userID, recipeID primitive.ObjectID) (*model.Favorite, error) {
	var f model.Favorite
	if err := r.coll.FindOne(ctx, bson.M{"user": userID, "recipe": recipeID}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, f)
	return err
}

// Delete removes the (user, recipe) pairing or returns ErrNotFound.
func (r *FavoriteRepo) Delete(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user": userID, "recipe": recipeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Favorite, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Favorite{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
