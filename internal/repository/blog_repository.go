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

// BlogRepo persists blog posts in the `blogs` collection.
type BlogRepo struct{ coll *mongo.Collection }

func NewBlogRepo(db *mongo.Database) *BlogRepo {
	return &BlogRepo{coll: db.Collection("blogs")}
}

func (r *BlogRepo) Create(ctx context.Context, b *model.Blog) error {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, b)
	return err
}

func (r *BlogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	var b model.Blog
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns every blog post, newest first.
func (r *BlogRepo) List(ctx context.Context) ([]model.Blog, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	blogs := []model.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepo) Update(ctx context.Context, id primitive.ObjectID, p model.BlogPatch) (*model.Blog, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Tags != nil {
		set["tags"] = p.Tags
	}

	var b model.Blog
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
