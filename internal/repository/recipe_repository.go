package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// RecipeRepo persists recipes in the `recipes` collection.
type RecipeRepo struct{ coll *mongo.Collection }

func NewRecipeRepo(db *mongo.Database) *RecipeRepo {
	return &RecipeRepo{coll: db.Collection("recipes")}
}

// Create inserts rec and fills in its ID, privacy default and timestamps.
func (r *RecipeRepo) Create(ctx context.Context, rec *model.Recipe) error {
	now := time.Now().UTC()
	rec.ID = primitive.NewObjectID()
	if rec.Privacy == "" {
		rec.Privacy = model.PrivacyPublic
	}
	if rec.Comments == nil {
		rec.Comments = []primitive.ObjectID{}
	}
	rec.CreatedAt, rec.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *RecipeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	var rec model.Recipe
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// GetByIDs returns the recipes that still exist among ids, in no
// particular order.
func (r *RecipeRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Recipe, error) {
	out := []model.Recipe{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List counts every match of q and returns the page selected by Skip and
// Limit, in insertion order.
func (r *RecipeRepo) List(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, int64, error) {
	filter := recipeFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetSkip(q.Skip)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	recipes := []model.Recipe{}
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// recipeFilter translates a RecipeQuery into a MongoDB filter.  The keyword
// is quoted so user input never runs as a regular expression.
func recipeFilter(q model.RecipeQuery) bson.M {
	filter := bson.M{}
	if q.Privacy != "" {
		filter["privacy"] = q.Privacy
	}
	if q.Keyword != "" {
		filter["recipe_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Keyword), Options: "i"}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	return filter
}

// Update applies the non-nil fields of p and returns the updated document.
func (r *RecipeRepo) Update(ctx context.Context, id primitive.ObjectID, p model.RecipePatch) (*model.Recipe, error) {
	set := recipeSet(p)
	set["updatedAt"] = time.Now().UTC()

	var rec model.Recipe
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func recipeSet(p model.RecipePatch) bson.M {
	set := bson.M{}
	if p.RecipeName != nil {
		set["recipe_name"] = *p.RecipeName
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.PrepTime != nil {
		set["prep_time"] = *p.PrepTime
	}
	if p.CookTime != nil {
		set["cook_time"] = *p.CookTime
	}
	if p.RecipeMakingTime != nil {
		set["recipe_making_time"] = *p.RecipeMakingTime
	}
	if p.Ingredients != nil {
		set["ingredients"] = p.Ingredients
	}
	if p.RecipeInstructions != nil {
		set["recipe_instructions"] = *p.RecipeInstructions
	}
	if p.Nutrition != nil {
		set["nutrition"] = *p.Nutrition
	}
	if p.Privacy != nil {
		set["privacy"] = *p.Privacy
	}
	return set
}

func (r *RecipeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Owners projects every recipe onto its (id, user) pair.
func (r *RecipeRepo) Owners(ctx context.Context) ([]model.RecipeOwner, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1, "user": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.RecipeOwner{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
