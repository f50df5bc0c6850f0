package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// RatingRepo persists ratings in the `ratings` collection.  There is
// deliberately no unique index on (user, recipe).
type RatingRepo struct{ coll *mongo.Collection }

func NewRatingRepo(db *mongo.Database) *RatingRepo {
	return &RatingRepo{coll: db.Collection("ratings")}
}

func (r *RatingRepo) Create(ctx context.Context, rt *model.Rating) error {
	rt.ID = primitive.NewObjectID()
	rt.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, rt)
	return err
}

func (r *RatingRepo) ListByRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]model.Rating, error) {
	cur, err := r.coll.Find(ctx, bson.M{"recipe": recipeID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Rating{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
