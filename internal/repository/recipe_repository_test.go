package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

func TestRecipeFilter(t *testing.T) {
	f := recipeFilter(model.RecipeQuery{Keyword: "pad.thai", Category: "Main", Privacy: "public"})

	assert.Equal(t, "public", f["privacy"])
	assert.Equal(t, "Main", f["category"])
	assert.Equal(t, primitive.Regex{Pattern: `pad\.thai`, Options: "i"}, f["recipe_name"])
}

func TestRecipeFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, recipeFilter(model.RecipeQuery{}))
}

func TestRecipeSetOnlyNonNil(t *testing.T) {
	name := "Soup"
	prep := 0.0
	set := recipeSet(model.RecipePatch{RecipeName: &name, PrepTime: &prep})

	assert.Len(t, set, 2)
	assert.Equal(t, "Soup", set["recipe_name"])
	assert.Equal(t, 0.0, set["prep_time"])
}

func TestTargetFilter(t *testing.T) {
	id := primitive.NewObjectID()
	f := targetFilter(model.CommentTarget{Kind: model.TargetBlog, ID: id})

	assert.Equal(t, model.TargetBlog, f["commentType"])
	assert.Equal(t, id, f["commentId"])
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "chef@example.com", normalizeEmail("  Chef@Example.COM "))
}
