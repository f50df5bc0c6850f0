package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// Comments is an in-memory repository.CommentStore.
type Comments struct {
	mu   sync.RWMutex
	coll collection[model.Comment]
}

func NewComments() *Comments { return &Comments{coll: newCollection[model.Comment]()} }

func (s *Comments) Create(_ context.Context, c *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	s.coll.insert(c.ID, *c)
	return nil
}

func (s *Comments) ListByTarget(_ context.Context, t model.CommentTarget, skip, limit int64) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := s.coll.filter(func(c model.Comment) bool { return c.Target() == t })
	return page(matches, skip, limit), nil
}

func (s *Comments) DeleteByTarget(_ context.Context, t model.CommentTarget) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.coll.filter(func(c model.Comment) bool { return c.Target() == t }) {
		if s.coll.remove(c.ID) {
			n++
		}
	}
	return n, nil
}

// Favorites is an in-memory repository.FavoriteStore.
type Favorites struct {
	mu   sync.RWMutex
	coll collection[model.Favorite]
}

func NewFavorites() *Favorites { return &Favorites{coll: newCollection[model.Favorite]()} }

func (s *Favorites) Find(_ context.Context, userID, recipeID primitive.ObjectID) (*model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.find(userID, recipeID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (s *Favorites) find(userID, recipeID primitive.ObjectID) (model.Favorite, bool) {
	for _, f := range s.coll.filter(func(f model.Favorite) bool { return f.User == userID && f.Recipe == recipeID }) {
		return f, true
	}
	return model.Favorite{}, false
}

// Create does not check for an existing pairing, matching the MongoDB
// collection which has no unique index.
func (s *Favorites) Create(_ context.Context, f *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now().UTC()
	s.coll.insert(f.ID, *f)
	return nil
}

func (s *Favorites) Delete(_ context.Context, userID, recipeID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.find(userID, recipeID)
	if !ok {
		return repository.ErrNotFound
	}
	s.coll.remove(f.ID)
	return nil
}

func (s *Favorites) ListByUser(_ context.Context, userID primitive.ObjectID) ([]model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.filter(func(f model.Favorite) bool { return f.User == userID }), nil
}

// Ratings is an in-memory repository.RatingStore.
type Ratings struct {
	mu   sync.RWMutex
	coll collection[model.Rating]
}

func NewRatings() *Ratings { return &Ratings{coll: newCollection[model.Rating]()} }

func (s *Ratings) Create(_ context.Context, r *model.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now().UTC()
	s.coll.insert(r.ID, *r)
	return nil
}

func (s *Ratings) ListByRecipe(_ context.Context, recipeID primitive.ObjectID) ([]model.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.filter(func(r model.Rating) bool { return r.Recipe == recipeID }), nil
}
