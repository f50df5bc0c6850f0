package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// RatingHandler serves /ratings.  Every rating is stored, including repeat
// ratings of the same recipe by the same user.
type RatingHandler struct {
	Ratings repository.RatingStore
	Recipes repository.RecipeStore
	Log     logrus.FieldLogger
}

type ratingReq struct {
	Rating *int `json:"rating" validate:"required,rating"`
}

func (h *RatingHandler) Rate(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	rid, ok := objectID(c, "recipeId")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}
	var req ratingReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Recipes.GetByID(ctx, rid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, msgRecipeNotFound)
		}
		return internalError(c, h.Log, "ratings.rate.recipe", err)
	}

	r := &model.Rating{User: uid, Recipe: rid, Rating: *req.Rating}
	if err := h.Ratings.Create(ctx, r); err != nil {
		return internalError(c, h.Log, "ratings.rate", err)
	}
	return c.JSON(http.StatusCreated, r)
}

// Average returns {"averageRating": mean rounded to one decimal}.  No
// ratings is a 404, never a zero average.
func (h *RatingHandler) Average(c echo.Context) error {
	rid, ok := objectID(c, "recipeId")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, err := h.Ratings.ListByRecipe(ctx, rid)
	if err != nil {
		return internalError(c, h.Log, "ratings.average", err)
	}
	avg, ok := model.AverageRating(ratings)
	if !ok {
		return message(c, http.StatusNotFound, "Recipe not found and No ratings found for this recipe")
	}
	return c.JSON(http.StatusOK, echo.Map{"averageRating": avg})
}
