package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/recipe-blog-api/internal/config"
	"github.com/iliyamo/recipe-blog-api/internal/handler"
	"github.com/iliyamo/recipe-blog-api/internal/middleware"
	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
	"github.com/iliyamo/recipe-blog-api/internal/validation"
)

// API is the prefix shared by every resource route.
const API = "/api"

// Cache namespaces purged by the routes that change them.
const (
	nsRecipes = "recipes"
	nsBlogs   = "blogs"
	nsRatings = "ratings"
)

// Deps is everything New needs to build the server.
type Deps struct {
	Cfg    *config.Config
	Stores repository.Stores
	Links  handler.OwnerLinks
	Redis  *redis.Client // optional; nil disables rate limiting and caching
	Log    *logrus.Logger
}

// New returns an Echo instance with the global middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis, d.Cfg.JWTSecret, d.Log))

	cache := middleware.NewResponseCache(d.Cfg.Cache, d.Redis, d.Log)
	s := d.Stores

	RegisterRoutes(e)
	RegisterUsers(e, handler.NewUserHandler(d.Cfg, s.Users, d.Log), d.Cfg.JWTSecret)
	RegisterRecipes(e, &handler.RecipeHandler{
		Recipes: s.Recipes, Comments: s.Comments, Links: d.Links, Log: d.Log,
	}, d.Cfg.JWTSecret, cache)
	RegisterBlogs(e, &handler.BlogHandler{
		Blogs: s.Blogs, Comments: s.Comments, Log: d.Log,
	}, d.Cfg.JWTSecret, cache)
	RegisterEngagement(e, Engagement{
		Comments:  &handler.CommentHandler{Recipes: s.Recipes, Blogs: s.Blogs, Comments: s.Comments, Log: d.Log},
		Favorites: &handler.FavoriteHandler{Favorites: s.Favorites, Recipes: s.Recipes, Log: d.Log},
		Ratings:   &handler.RatingHandler{Ratings: s.Ratings, Recipes: s.Recipes, Log: d.Log},
	}, d.Cfg.JWTSecret, cache)
	return e
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterUsers registers the account routes.  Signup and login are open;
// listing users needs an admin token.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group(API + "/users")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)

	auth := middleware.JWTAuth(jwtSecret)
	g.GET("", h.List, auth, middleware.RequireRole(model.RoleAdmin))
	g.GET("/me", h.Me, auth)
}
