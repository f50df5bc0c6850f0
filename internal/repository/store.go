package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// UserStore is the credential store.
type UserStore interface {
	// Create inserts u, assigning its ID and timestamps.
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// AddRecipe adds recipeID to the user's recipe list unless present.
	AddRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error
	// RemoveRecipe removes recipeID from the user's recipe list.
	RemoveRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error
}

// RecipeStore persists recipes.
type RecipeStore interface {
	Create(ctx context.Context, r *model.Recipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Recipe, error)
	// List returns one page of matching recipes and the total match count.
	List(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, p model.RecipePatch) (*model.Recipe, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Owners(ctx context.Context) ([]model.RecipeOwner, error)
}

// BlogStore persists blog posts.
type BlogStore interface {
	Create(ctx context.Context, b *model.Blog) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, p model.BlogPatch) (*model.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CommentStore persists comments on recipes and blogs.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByTarget(ctx context.Context, t model.CommentTarget, skip, limit int64) ([]model.Comment, error)
	DeleteByTarget(ctx context.Context, t model.CommentTarget) (int64, error)
}

// FavoriteStore persists (user, recipe) favorites.
type FavoriteStore interface {
	Find(ctx context.Context, userID, recipeID primitive.ObjectID) (*model.Favorite, error)
	Create(ctx context.Context, f *model.Favorite) error
	Delete(ctx context.Context, userID, recipeID primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Favorite, error)
}

// RatingStore persists ratings.
type RatingStore interface {
	Create(ctx context.Context, r *model.Rating) error
	ListByRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]model.Rating, error)
}

// Stores bundles one implementation of every store.
type Stores struct {
	Users     UserStore
	Recipes   RecipeStore
	Blogs     BlogStore
	Comments  CommentStore
	Favorites FavoriteStore
	Ratings   RatingStore
}
