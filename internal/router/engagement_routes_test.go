package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAverageRating(t *testing.T) {
	s := newServer(t)
	ann := s.user("ann", "")
	bob := s.user("bob", "")
	id := s.createRecipe(ann, recipeBody("Pancakes"))
	path := "/api/ratings/" + id

	rec := s.do(http.MethodGet, path+"/rating", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Recipe not found and No ratings found for this recipe", messageOf(t, rec))

	rec = s.do(http.MethodPost, path+"/rate", ann, map[string]int{"rating": 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodGet, path+"/rating", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, decode[map[string]float64](t, rec)["averageRating"])

	rec = s.do(http.MethodPost, path+"/rate", bob, map[string]int{"rating": 4})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodGet, path+"/rating", "", nil)
	assert.EqualValues(t, 4.5, decode[map[string]float64](t, rec)["averageRating"])

	// repeat ratings are kept
	rec = s.do(http.MethodPost, path+"/rate", bob, map[string]int{"rating": 4})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodGet, path+"/rating", "", nil)
	assert.EqualValues(t, 4.3, decode[map[string]float64](t, rec)["averageRating"])
}

func TestRateRejectsOutOfRange(t *testing.T) {
	s := newServer(t)
	ann := s.user("ann", "")
	id := s.createRecipe(ann, recipeBody("Waffles"))

	for _, body := range []map[string]interface{}{{"rating": 0}, {"rating": 6}, {}} {
		rec := s.do(http.MethodPost, "/api/ratings/"+id+"/rate", ann, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%v", body)
	}
	rec := s.do(http.MethodPost, "/api/ratings/"+id+"/rate", ann, map[string]int{"rating": 9})
	assert.Equal(t, "Rating must be between 1 and 5", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/api/ratings/"+primitive.NewObjectID().Hex()+"/rate", ann, map[string]int{"rating": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavorites(t *testing.T) {
	s := newServer(t)
	ann := s.user("ann", "")
	bob := s.user("bob", "")
	id := s.createRecipe(ann, recipeBody("Lasagna"))

	rec := s.do(http.MethodPost, "/api/favorites/"+id, bob, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Recipe added to favorites", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/api/favorites/"+id, bob, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Recipe already in favorites", messageOf(t, rec))

	rec = s.do(http.MethodGet, "/api/favorites", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	favs := decode[[]map[string]interface{}](t, rec)
	require.Len(t, favs, 1)
	recipe := favs[0]["recipe"].(map[string]interface{})
	assert.Equal(t, "Lasagna", recipe["recipe_name"])

	rec = s.do(http.MethodGet, "/api/favorites", ann, nil)
	assert.Empty(t, decode[[]map[string]interface{}](t, rec))

	rec = s.do(http.MethodPost, "/api/favorites/"+primitive.NewObjectID().Hex(), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/favorites/"+id, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Recipe removed from favorites", messageOf(t, rec))

	rec = s.do(http.MethodDelete, "/api/favorites/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Favorite not found", messageOf(t, rec))
}

func TestComments(t *testing.T) {
	s := newServer(t)
	ann := s.user("ann", "")
	bob := s.user("bob", "")
	recipeID := s.createRecipe(ann, recipeBody("Tacos"))
	blogID := s.createBlog(ann, "Taco Tuesday")

	rec := s.do(http.MethodGet, "/api/recipes/"+recipeID+"/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No comments found for this recipe", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/api/recipes/"+recipeID+"/comments", bob, map[string]string{"text": "Great!"})
	require.Equal(t, http.StatusCreated, rec.Code)
	cm := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "Recipe", cm["commentType"])
	assert.Equal(t, recipeID, cm["commentId"])

	rec = s.do(http.MethodPost, "/api/recipes/"+recipeID+"/comments", bob, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Comment text is required", messageOf(t, rec))

	// the recipe comment route also accepts a blog ID
	rec = s.do(http.MethodPost, "/api/recipes/"+blogID+"/comments", bob, map[string]string{"text": "Nice post"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Blog", decode[map[string]interface{}](t, rec)["commentType"])

	rec = s.do(http.MethodPost, "/api/blogs/"+blogID+"/comments", ann, map[string]string{"text": "Thanks"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/blogs/"+blogID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]interface{}](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Nice post", list[0]["text"])
	assert.Equal(t, "Thanks", list[1]["text"])

	rec = s.do(http.MethodGet, "/api/blogs/"+recipeID+"/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found", messageOf(t, rec))

	rec = s.do(http.MethodGet, "/api/recipes/"+recipeID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 1)

	// deleting the recipe takes its comments along
	rec = s.do(http.MethodDelete, "/api/recipes/"+recipeID, ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/recipes/"+recipeID+"/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Recipe not found", messageOf(t, rec))
}
