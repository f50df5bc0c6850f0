// Package memstore implements the repository stores in process memory.  It
// backs STORAGE_DRIVER=memory for local runs and the HTTP tests, and mirrors
// the MongoDB repositories: same sentinel errors, same filters, insertion
// ordered listings.
package memstore

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// New returns a fresh set of empty stores.
func New() repository.Stores {
	return repository.Stores{
		Users:     NewUsers(),
		Recipes:   NewRecipes(),
		Blogs:     NewBlogs(),
		Comments:  NewComments(),
		Favorites: NewFavorites(),
		Ratings:   NewRatings(),
	}
}

// collection keeps documents by ID in insertion order.  It does no locking;
// the owning store guards it.
type collection[T any] struct {
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{docs: map[primitive.ObjectID]T{}}
}

func (c *collection[T]) insert(id primitive.ObjectID, doc T) {
	c.order = append(c.order, id)
	c.docs[id] = doc
}

func (c *collection[T]) get(id primitive.ObjectID) (T, bool) {
	doc, ok := c.docs[id]
	return doc, ok
}

func (c *collection[T]) put(id primitive.ObjectID, doc T) bool {
	if _, ok := c.docs[id]; !ok {
		return false
	}
	c.docs[id] = doc
	return true
}

func (c *collection[T]) remove(id primitive.ObjectID) bool {
	if _, ok := c.docs[id]; !ok {
		return false
	}
	delete(c.docs, id)
	c.order = slices.DeleteFunc(c.order, func(o primitive.ObjectID) bool { return o == id })
	return true
}

// filter returns the matching documents in insertion order.
func (c *collection[T]) filter(keep func(T) bool) []T {
	out := []T{}
	for _, id := range c.order {
		if doc := c.docs[id]; keep == nil || keep(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// page cuts items down to the [skip, skip+limit) window; limit 0 means all.
func page[T any](items []T, skip, limit int64) []T {
	if skip < 0 || skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}
