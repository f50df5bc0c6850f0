package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// CommentRepo persists comments in the `comments` collection.
type CommentRepo struct{ coll *mongo.Collection }

func NewCommentRepo(db *mongo.Database) *CommentRepo {
	return &CommentRepo{coll: db.Collection("comments")}
}

func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, c)
	return err
}

// ListByTarget returns one page of the comments on t, oldest first.
func (r *CommentRepo) ListByTarget(ctx context.Context, t model.CommentTarget, skip, limit int64) ([]model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, targetFilter(t), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByTarget removes every comment on t and reports how many went.
func (r *CommentRepo) DeleteByTarget(ctx context.Context, t model.CommentTarget) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, targetFilter(t))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func targetFilter(t model.CommentTarget) bson.M {
	return bson.M{"commentType": t.Kind, "commentId": t.ID}
}
