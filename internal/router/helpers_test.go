package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/recipe-blog-api/internal/config"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
	"github.com/iliyamo/recipe-blog-api/internal/repository/memstore"
	"github.com/iliyamo/recipe-blog-api/internal/service"
)

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	stores repository.Stores
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	return newServerWith(t, &config.Config{}, nil)
}

// newServerWith fills in the auth settings of cfg and serves it against a
// fresh in-memory store, with rdb backing the cache and rate limiter.
func newServerWith(t *testing.T, cfg *config.Config, rdb *redis.Client) *testServer {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	cfg.JWTSecret = "router-test-secret"
	cfg.TokenTTL = time.Hour
	cfg.BcryptCost = bcrypt.MinCost
	stores := memstore.New()
	e := New(Deps{
		Cfg:    cfg,
		Stores: stores,
		Links:  &service.RecipeLinker{Users: stores.Users, Log: log},
		Redis:  rdb,
		Log:    log,
	})
	return &testServer{t: t, e: e, stores: stores}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// user signs up and logs in, returning the token.
func (s *testServer) user(name, role string) string {
	s.t.Helper()
	body := map[string]string{"username": name, "email": name + "@example.com", "password": "pw-" + name}
	if role != "" {
		body["role"] = role
	}
	rec := s.do(http.MethodPost, "/api/users/signup", "", body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": name + "@example.com", "password": "pw-" + name})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]interface{}](s.t, rec)["token"].(string)
}

func (s *testServer) createRecipe(token string, body map[string]interface{}) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/recipes", token, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]interface{}](s.t, rec)["_id"].(string)
}

func (s *testServer) createBlog(token, title string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/blogs", token, map[string]interface{}{
		"title":       title,
		"content":     "Long read",
		"image":       "https://img.example.com/blog.png",
		"description": "About " + title,
		"category":    "Stories",
		"tags":        []string{"food"},
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]interface{}](s.t, rec)["_id"].(string)
}

func recipeBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"recipe_name":         name,
		"category":            "Main",
		"image":               "https://img.example.com/dish.jpg",
		"prep_time":           10,
		"cook_time":           15,
		"recipe_making_time":  25,
		"ingredients":         []string{"rice", "water"},
		"recipe_instructions": map[string]interface{}{"steps": []string{"boil", "serve"}},
		"nutrition":           map[string]interface{}{"calories": 300, "fat": "5g", "carbs": "60g", "protein": 6},
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return fmt.Sprint(decode[map[string]interface{}](t, rec)["message"])
}

type recipeList struct {
	Recipes []struct {
		ID         string `json:"_id"`
		RecipeName string `json:"recipe_name"`
		Privacy    string `json:"privacy"`
	} `json:"recipes"`
	Pagination struct {
		CurrentPage  int64 `json:"currentPage"`
		TotalPages   int64 `json:"totalPages"`
		TotalRecipes int64 `json:"totalRecipes"`
	} `json:"pagination"`
}
