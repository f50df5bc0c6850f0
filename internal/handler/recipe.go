package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// OwnerLinks keeps a user's recipe list in step with recipe writes.  Both
// calls are best-effort and never fail the request.
type OwnerLinks interface {
	Link(ctx context.Context, userID, recipeID primitive.ObjectID)
	Unlink(ctx context.Context, userID, recipeID primitive.ObjectID)
}

// RecipeHandler serves /recipes.
type RecipeHandler struct {
	Recipes  repository.RecipeStore
	Comments repository.CommentStore
	Links    OwnerLinks
	Log      logrus.FieldLogger
}

const (
	msgInvalidRecipeID = "Invalid recipe ID"
	msgRecipeNotFound  = "Recipe not found"
)

// recipeReq is the body of POST /recipes.  Field order decides which
// message a payload missing several fields gets.
type recipeReq struct {
	RecipeName         string              `json:"recipe_name" validate:"required,min=3,max=100"`
	Category           string              `json:"category" validate:"required"`
	Image              string              `json:"image" validate:"required,imageurl"`
	PrepTime           *float64            `json:"prep_time" validate:"required,gte=0"`
	CookTime           *float64            `json:"cook_time" validate:"omitnil,gte=0"`
	RecipeMakingTime   *float64            `json:"recipe_making_time" validate:"required,gte=0"`
	Ingredients        []string            `json:"ingredients" validate:"required,min=1,dive,required"`
	RecipeInstructions *model.Instructions `json:"recipe_instructions" validate:"required"`
	Nutrition          *model.Nutrition    `json:"nutrition" validate:"required"`
	Privacy            string              `json:"privacy" validate:"omitempty,oneof=public private"`
}

// recipePatchReq is the body of PUT /recipes/:id.  Absent fields are kept.
type recipePatchReq struct {
	RecipeName         *string             `json:"recipe_name" validate:"omitnil,min=3,max=100"`
	Category           *string             `json:"category" validate:"omitnil,min=1"`
	Image              *string             `json:"image" validate:"omitnil,imageurl"`
	PrepTime           *float64            `json:"prep_time" validate:"omitnil,gte=0"`
	CookTime           *float64            `json:"cook_time" validate:"omitnil,gte=0"`
	RecipeMakingTime   *float64            `json:"recipe_making_time" validate:"omitnil,gte=0"`
	Ingredients        []string            `json:"ingredients" validate:"omitnil,min=1,dive,required"`
	RecipeInstructions *model.Instructions `json:"recipe_instructions"`
	Nutrition          *model.Nutrition    `json:"nutrition"`
	Privacy            *string             `json:"privacy" validate:"omitnil,oneof=public private"`
}

func (r recipePatchReq) patch() model.RecipePatch {
	return model.RecipePatch{
		RecipeName:         r.RecipeName,
		Category:           r.Category,
		Image:              r.Image,
		PrepTime:           r.PrepTime,
		CookTime:           r.CookTime,
		RecipeMakingTime:   r.RecipeMakingTime,
		Ingredients:        r.Ingredients,
		RecipeInstructions: r.RecipeInstructions,
		Nutrition:          r.Nutrition,
		Privacy:            r.Privacy,
	}
}

type pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecipes int64 `json:"totalRecipes"`
}

type recipeListResp struct {
	Recipes    []model.Recipe `json:"recipes"`
	Pagination pagination     `json:"pagination"`
}

// List filters by keyword (case-insensitive literal match on the name),
// category and privacy (default public) and returns one page.
func (h *RecipeHandler) List(c echo.Context) error {
	p := parsePage(c)
	q := model.RecipeQuery{
		Keyword:  c.QueryParam("keyword"),
		Category: c.QueryParam("category"),
		Privacy:  c.QueryParam("privacy"),
		Skip:     p.skip(),
		Limit:    p.Limit,
	}
	if q.Privacy == "" {
		q.Privacy = model.PrivacyPublic
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	recipes, total, err := h.Recipes.List(ctx, q)
	if err != nil {
		return internalError(c, h.Log, "recipes.list", err)
	}
	return c.JSON(http.StatusOK, recipeListResp{
		Recipes: recipes,
		Pagination: pagination{
			CurrentPage:  p.Number,
			TotalPages:   p.totalPages(total),
			TotalRecipes: total,
		},
	})
}

func (h *RecipeHandler) Get(c echo.Context) error {
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgRecipeNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "recipes.get", err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Create stores the recipe owned by the caller, then links it onto the
// caller's recipe list.  The link is not part of the same write.
func (h *RecipeHandler) Create(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	var req recipeReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}

	rec := &model.Recipe{
		RecipeName:         req.RecipeName,
		Category:           req.Category,
		Image:              req.Image,
		PrepTime:           *req.PrepTime,
		RecipeMakingTime:   *req.RecipeMakingTime,
		Ingredients:        req.Ingredients,
		RecipeInstructions: *req.RecipeInstructions,
		Nutrition:          *req.Nutrition,
		User:               uid,
		Privacy:            req.Privacy,
	}
	if req.CookTime != nil {
		rec.CookTime = *req.CookTime
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Recipes.Create(ctx, rec); err != nil {
		return internalError(c, h.Log, "recipes.create", err)
	}
	h.Links.Link(ctx, uid, rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

// Update applies a partial update.  Existence is checked before ownership
// and ownership before the body is validated.
func (h *RecipeHandler) Update(c echo.Context) error {
	ident, _, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgRecipeNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "recipes.update.load", err)
	}
	if !canModify(ident, rec.User) {
		return message(c, http.StatusForbidden, "Not authorized to update this recipe")
	}

	var req recipePatchReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}
	updated, err := h.Recipes.Update(ctx, id, req.patch())
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgRecipeNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "recipes.update", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes the recipe, its comments and the owner's reference to it.
func (h *RecipeHandler) Delete(c echo.Context) error {
	ident, _, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidRecipeID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgRecipeNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "recipes.delete.load", err)
	}
	if !canModify(ident, rec.User) {
		return message(c, http.StatusForbidden, "Not authorized to delete this recipe")
	}

	err = h.Recipes.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgRecipeNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "recipes.delete", err)
	}

	if _, err := h.Comments.DeleteByTarget(ctx, model.CommentTarget{Kind: model.TargetRecipe, ID: id}); err != nil {
		h.Log.WithError(err).WithField("recipe_id", id.Hex()).Warn("delete recipe comments failed")
	}
	h.Links.Unlink(ctx, rec.User, id)
	return message(c, http.StatusOK, "Recipe deleted")
}
