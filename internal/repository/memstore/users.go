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

// Users is an in-memory repository.UserStore.
type Users struct {
	mu   sync.RWMutex
	coll collection[model.User]
}

func NewUsers() *Users { return &Users{coll: newCollection[model.User]()} }

func (s *Users) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	// email wins over username when both collide
	if len(s.coll.filter(func(x model.User) bool { return x.Email == email })) > 0 {
		return repository.ErrEmailExists
	}
	if len(s.coll.filter(func(x model.User) bool { return x.Username == u.Username })) > 0 {
		return repository.ErrUsernameExists
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = email
	u.Recipes = slices.Clone(u.Recipes)
	if u.Recipes == nil {
		u.Recipes = []primitive.ObjectID{}
	}
	u.CreatedAt, u.UpdatedAt = now, now
	s.coll.insert(u.ID, *u)
	return nil
}

func (s *Users) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.coll.docs {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := s.coll.filter(nil)
	for i := range users {
		users[i] = *cloneUser(users[i])
	}
	return users, nil
}

func (s *Users) AddRecipe(_ context.Context, userID, recipeID primitive.ObjectID) error {
	return s.update(userID, func(u *model.User) {
		if !slices.Contains(u.Recipes, recipeID) {
			u.Recipes = append(slices.Clone(u.Recipes), recipeID)
		}
	})
}

func (s *Users) RemoveRecipe(_ context.Context, userID, recipeID primitive.ObjectID) error {
	return s.update(userID, func(u *model.User) {
		u.Recipes = slices.DeleteFunc(slices.Clone(u.Recipes), func(id primitive.ObjectID) bool { return id == recipeID })
	})
}

func (s *Users) update(id primitive.ObjectID, fn func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.coll.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	s.coll.put(id, u)
	return nil
}

func cloneUser(u model.User) *model.User {
	u.Recipes = slices.Clone(u.Recipes)
	return &u
}
