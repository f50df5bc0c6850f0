package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-blog-api/internal/handler"
	"github.com/iliyamo/recipe-blog-api/internal/middleware"
	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// RegisterBlogs registers /api/blogs.  DELETE /:id/admin skips the author
// check and is reserved for admins.
func RegisterBlogs(e *echo.Echo, h *handler.BlogHandler, jwtSecret string, cache *middleware.ResponseCache) {
	g := e.Group(API + "/blogs")
	auth := middleware.JWTAuth(jwtSecret)
	purge := cache.Invalidate(nsBlogs)

	g.GET("", h.List, cache.Serve(nsBlogs))
	g.GET("/:id", h.Get, cache.Serve(nsBlogs))
	g.POST("", h.Create, auth, purge)
	g.PUT("/:id", h.Update, auth, purge)
	g.DELETE("/:id", h.Delete, auth, purge)
	g.DELETE("/:id/admin", h.DeleteAdmin, auth, middleware.RequireRole(model.RoleAdmin), purge)
}
