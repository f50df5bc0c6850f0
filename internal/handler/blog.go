package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/middleware"
	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// BlogHandler serves /blogs.
type BlogHandler struct {
	Blogs    repository.BlogStore
	Comments repository.CommentStore
	Log      logrus.FieldLogger
}

const (
	msgInvalidBlogID    = "Invalid blog post ID"
	msgBlogNotFound     = "Blog not found"
	msgBlogPostNotFound = "Blog post not found"
	msgBlogDeleted      = "Blog post deleted successfully"
)

type blogReq struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Image       string   `json:"image" validate:"required,imageurl"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
}

type blogPatchReq struct {
	Title       *string  `json:"title" validate:"omitnil,min=1"`
	Content     *string  `json:"content" validate:"omitnil,min=1"`
	Image       *string  `json:"image" validate:"omitnil,imageurl"`
	Description *string  `json:"description" validate:"omitnil,min=1"`
	Category    *string  `json:"category" validate:"omitnil,min=1"`
	Tags        []string `json:"tags"`
}

func (h *BlogHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	blogs, err := h.Blogs.List(ctx)
	if err != nil {
		return internalError(c, h.Log, "blogs.list", err)
	}
	return c.JSON(http.StatusOK, blogs)
}

func (h *BlogHandler) Get(c echo.Context) error {
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidBlogID)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgBlogNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "blogs.get", err)
	}
	return c.JSON(http.StatusOK, b)
}

// Create stores a post authored by the caller.
func (h *BlogHandler) Create(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	var req blogReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}

	b := &model.Blog{
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.Image,
		Description: req.Description,
		Author:      uid,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Blogs.Create(ctx, b); err != nil {
		return internalError(c, h.Log, "blogs.create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BlogHandler) Update(c echo.Context) error {
	ident, _, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidBlogID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgBlogNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "blogs.update.load", err)
	}
	if !canModify(ident, b.Author) {
		return message(c, http.StatusForbidden, "Not authorized to update this blog")
	}

	var req blogPatchReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}
	updated, err := h.Blogs.Update(ctx, id, model.BlogPatch{
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgBlogNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "blogs.update", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete lets the author or an admin remove a post.
func (h *BlogHandler) Delete(c echo.Context) error {
	ident, _, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidBlogID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgBlogPostNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "blogs.delete.load", err)
	}
	if !canModify(ident, b.Author) {
		return message(c, http.StatusForbidden, middleware.MsgAccessDenied)
	}

	err = h.remove(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgBlogPostNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "blogs.delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msgBlogDeleted, "postId": id.Hex()})
}

// DeleteAdmin removes any post.  The route sits behind RequireRole(admin).
func (h *BlogHandler) DeleteAdmin(c echo.Context) error {
	id, ok := objectID(c, "id")
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidBlogID)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.remove(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgBlogPostNotFound)
	}
	if err != nil {
		return internalError(c, h.Log, "blogs.delete_admin", err)
	}
	return message(c, http.StatusOK, msgBlogDeleted)
}

// remove deletes the post, then its comments.  A failure to delete the
// comments is logged only; the post is already gone.
func (h *BlogHandler) remove(ctx context.Context, id primitive.ObjectID) error {
	if err := h.Blogs.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := h.Comments.DeleteByTarget(ctx, model.CommentTarget{Kind: model.TargetBlog, ID: id}); err != nil {
		h.Log.WithError(err).WithField("blog_id", id.Hex()).Warn("delete blog comments failed")
	}
	return nil
}
