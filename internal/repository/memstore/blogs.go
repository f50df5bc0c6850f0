package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// Blogs is an in-memory repository.BlogStore.
type Blogs struct {
	mu   sync.RWMutex
	coll collection[model.Blog]
}

func NewBlogs() *Blogs { return &Blogs{coll: newCollection[model.Blog]()} }

func (s *Blogs) Create(_ context.Context, b *model.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.CreatedAt, b.UpdatedAt = now, now
	s.coll.insert(b.ID, *b)
	return nil
}

func (s *Blogs) GetByID(_ context.Context, id primitive.ObjectID) (*model.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

// List returns newest first, like the MongoDB repository.
func (s *Blogs) List(_ context.Context) ([]model.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blogs := s.coll.filter(nil)
	slices.Reverse(blogs)
	return blogs, nil
}

func (s *Blogs) Update(_ context.Context, id primitive.ObjectID, p model.BlogPatch) (*model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Tags != nil {
		b.Tags = slices.Clone(p.Tags)
	}
	b.UpdatedAt = time.Now().UTC()
	s.coll.put(id, b)
	return &b, nil
}

func (s *Blogs) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.coll.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}
