package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// Recipes is an in-memory repository.RecipeStore.
type Recipes struct {
	mu   sync.RWMutex
	coll collection[model.Recipe]
}

func NewRecipes() *Recipes { return &Recipes{coll: newCollection[model.Recipe]()} }

func (s *Recipes) Create(_ context.Context, r *model.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	if r.Privacy == "" {
		r.Privacy = model.PrivacyPublic
	}
	if r.Comments == nil {
		r.Comments = []primitive.ObjectID{}
	}
	r.CreatedAt, r.UpdatedAt = now, now
	s.coll.insert(r.ID, *r)
	return nil
}

func (s *Recipes) GetByID(_ context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *Recipes) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.filter(func(r model.Recipe) bool { return slices.Contains(ids, r.ID) }), nil
}

func (s *Recipes) List(_ context.Context, q model.RecipeQuery) ([]model.Recipe, int64, error) {
	keyword := strings.ToLower(q.Keyword)
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.coll.filter(func(r model.Recipe) bool {
		if q.Privacy != "" && r.Privacy != q.Privacy {
			return false
		}
		if q.Category != "" && r.Category != q.Category {
			return false
		}
		return keyword == "" || strings.Contains(strings.ToLower(r.RecipeName), keyword)
	})
	return page(matches, q.Skip, q.Limit), int64(len(matches)), nil
}

func (s *Recipes) Update(_ context.Context, id primitive.ObjectID, p model.RecipePatch) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.RecipeName != nil {
		r.RecipeName = *p.RecipeName
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.PrepTime != nil {
		r.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		r.CookTime = *p.CookTime
	}
	if p.RecipeMakingTime != nil {
		r.RecipeMakingTime = *p.RecipeMakingTime
	}
	if p.Ingredients != nil {
		r.Ingredients = slices.Clone(p.Ingredients)
	}
	if p.RecipeInstructions != nil {
		r.RecipeInstructions = *p.RecipeInstructions
	}
	if p.Nutrition != nil {
		r.Nutrition = *p.Nutrition
	}
	if p.Privacy != nil {
		r.Privacy = *p.Privacy
	}
	r.UpdatedAt = time.Now().UTC()
	s.coll.put(id, r)
	return &r, nil
}

func (s *Recipes) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.coll.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Recipes) Owners(_ context.Context) ([]model.RecipeOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.RecipeOwner{}
	for _, r := range s.coll.filter(nil) {
		out = append(out, model.RecipeOwner{ID: r.ID, User: r.User})
	}
	return out, nil
}
