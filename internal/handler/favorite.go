package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// FavoriteHandler serves /favorites.  The (user, recipe) pair is kept unique
// by checking before insert.
type FavoriteHandler struct {
	Favorites repository.FavoriteStore
	Recipes   repository.RecipeStore
	Log       logrus.FieldLogger
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	rid, ok := objectID(c, "recipeId")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Recipes.GetByID(ctx, rid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, msgRecipeNotFound)
		}
		return internalError(c, h.Log, "favorites.add.recipe", err)
	}

	_, err := h.Favorites.Find(ctx, uid, rid)
	if err == nil {
		return message(c, http.StatusBadRequest, "Recipe already in favorites")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return internalError(c, h.Log, "favorites.add.find", err)
	}

	if err := h.Favorites.Create(ctx, &model.Favorite{User: uid, Recipe: rid}); err != nil {
		return internalError(c, h.Log, "favorites.add", err)
	}
	return message(c, http.StatusCreated, "Recipe added to favorites")
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	rid, ok := objectID(c, "recipeId")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.Favorites.Delete(ctx, uid, rid)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, "Favorite not found")
	}
	if err != nil {
		return internalError(c, h.Log, "favorites.remove", err)
	}
	return message(c, http.StatusOK, "Recipe removed from favorites")
}

// List returns the caller's favorites with each recipe filled in.  A
// favorite whose recipe was deleted has a null recipe.
func (h *FavoriteHandler) List(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	favs, err := h.Favorites.ListByUser(ctx, uid)
	if err != nil {
		return internalError(c, h.Log, "favorites.list", err)
	}
	ids := make([]primitive.ObjectID, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.Recipe)
	}
	recipes, err := h.Recipes.GetByIDs(ctx, ids)
	if err != nil {
		return internalError(c, h.Log, "favorites.list.recipes", err)
	}
	byID := make(map[primitive.ObjectID]*model.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	out := make([]model.FavoriteView, 0, len(favs))
	for _, f := range favs {
		out = append(out, model.FavoriteView{ID: f.ID, User: f.User, Recipe: byID[f.Recipe], CreatedAt: f.CreatedAt})
	}
	return c.JSON(http.StatusOK, out)
}
