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

// CommentHandler serves comments on recipes and blog posts.  A comment
// target is a {kind, id} pair; which kinds a route accepts is fixed when
// the route is registered.
type CommentHandler struct {
	Recipes  repository.RecipeStore
	Blogs    repository.BlogStore
	Comments repository.CommentStore
	Log      logrus.FieldLogger
}

type commentReq struct {
	Text string `json:"text" validate:"required"`
}

// Kinds tried by each comment route, in order.  /recipes/:id/comments also
// accepts a blog post ID.
var (
	RecipeOrBlog = []model.TargetKind{model.TargetRecipe, model.TargetBlog}
	BlogOnly     = []model.TargetKind{model.TargetBlog}
)

// resolve finds the first kind for which id names an existing document.
func (h *CommentHandler) resolve(ctx context.Context, kinds []model.TargetKind, id primitive.ObjectID) (model.CommentTarget, error) {
	for _, kind := range kinds {
		var err error
		switch kind {
		case model.TargetRecipe:
			_, err = h.Recipes.GetByID(ctx, id)
		case model.TargetBlog:
			_, err = h.Blogs.GetByID(ctx, id)
		default:
			continue
		}
		if err == nil {
			return model.CommentTarget{Kind: kind, ID: id}, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return model.CommentTarget{}, err
		}
	}
	return model.CommentTarget{}, repository.ErrNotFound
}

func notFoundFor(kinds []model.TargetKind) string {
	if kinds[0] == model.TargetBlog {
		return msgBlogNotFound
	}
	return msgRecipeNotFound
}

// Add returns a handler that comments on the target named by :id.
func (h *CommentHandler) Add(kinds []model.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, uid, ok := currentUser(c)
		if !ok {
			return unauthenticated(c)
		}
		id, ok := objectID(c, "id")
		if !ok {
			return message(c, http.StatusBadRequest, "Invalid target ID")
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		target, err := h.resolve(ctx, kinds, id)
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, notFoundFor(kinds))
		}
		if err != nil {
			return internalError(c, h.Log, "comments.add.resolve", err)
		}

		var req commentReq
		if msg := bindValid(c, &req); msg != "" {
			return message(c, http.StatusBadRequest, msg)
		}
		cm := model.NewComment(uid, target, req.Text)
		if err := h.Comments.Create(ctx, &cm); err != nil {
			return internalError(c, h.Log, "comments.add", err)
		}
		return c.JSON(http.StatusCreated, cm)
	}
}

// List returns a handler that pages through the comments on :id, oldest
// first.  An empty page is a 404.
func (h *CommentHandler) List(kinds []model.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := objectID(c, "id")
		if !ok {
			return message(c, http.StatusBadRequest, "Invalid target ID")
		}
		p := parsePage(c)

		ctx, cancel := requestContext(c)
		defer cancel()

		target, err := h.resolve(ctx, kinds, id)
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, notFoundFor(kinds))
		}
		if err != nil {
			return internalError(c, h.Log, "comments.list.resolve", err)
		}

		comments, err := h.Comments.ListByTarget(ctx, target, p.skip(), p.Limit)
		if err != nil {
			return internalError(c, h.Log, "comments.list", err)
		}
		if len(comments) == 0 {
			if target.Kind == model.TargetBlog {
				return message(c, http.StatusNotFound, "No comments found for this blog")
			}
			return message(c, http.StatusNotFound, "No comments found for this recipe")
		}
		return c.JSON(http.StatusOK, comments)
	}
}
