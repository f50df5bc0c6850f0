package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-blog-api/internal/handler"
	"github.com/iliyamo/recipe-blog-api/internal/middleware"
)

// Engagement groups the handlers for comments, favorites and ratings.
type Engagement struct {
	Comments  *handler.CommentHandler
	Favorites *handler.FavoriteHandler
	Ratings   *handler.RatingHandler
}

// RegisterEngagement registers comment, favorite and rating routes.
func RegisterEngagement(e *echo.Echo, h Engagement, jwtSecret string, cache *middleware.ResponseCache) {
	auth := middleware.JWTAuth(jwtSecret)

	// /recipes/:id/comments also accepts a blog post ID.
	e.POST(API+"/recipes/:id/comments", h.Comments.Add(handler.RecipeOrBlog), auth)
	e.GET(API+"/recipes/:id/comments", h.Comments.List(handler.RecipeOrBlog))
	e.POST(API+"/blogs/:id/comments", h.Comments.Add(handler.BlogOnly), auth)
	e.GET(API+"/blogs/:id/comments", h.Comments.List(handler.BlogOnly))

	fav := e.Group(API+"/favorites", auth)
	fav.GET("", h.Favorites.List)
	fav.POST("/:recipeId", h.Favorites.Add)
	fav.DELETE("/:recipeId", h.Favorites.Remove)

	e.POST(API+"/ratings/:recipeId/rate", h.Ratings.Rate, auth, cache.Invalidate(nsRatings))
	e.GET(API+"/ratings/:recipeId/rating", h.Ratings.Average, cache.Serve(nsRatings))
}
