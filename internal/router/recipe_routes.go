package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-blog-api/internal/handler"
	"github.com/iliyamo/recipe-blog-api/internal/middleware"
)

// RegisterRecipes registers /api/recipes.  Reads are public and cached;
// writes need a token, and the handler applies the owner-or-admin rule.
func RegisterRecipes(e *echo.Echo, h *handler.RecipeHandler, jwtSecret string, cache *middleware.ResponseCache) {
	g := e.Group(API + "/recipes")
	auth := middleware.JWTAuth(jwtSecret)
	purge := cache.Invalidate(nsRecipes)

	g.GET("", h.List, cache.Serve(nsRecipes))
	g.GET("/:id", h.Get, cache.Serve(nsRecipes))
	g.POST("", h.Create, auth, purge)
	g.PUT("/:id", h.Update, auth, purge)
	g.DELETE("/:id", h.Delete, auth, purge)
}
