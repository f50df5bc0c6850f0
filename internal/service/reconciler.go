package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// Reconciler periodically rebuilds every user's recipe list from the
// recipes collection, the source of truth for ownership.
type Reconciler struct {
	Users    repository.UserStore
	Recipes  repository.RecipeStore
	Interval time.Duration
	Log      logrus.FieldLogger
}

// SweepResult counts the repairs made by one sweep.
type SweepResult struct {
	Linked   int // recipes added to their owner's list
	Unlinked int // list entries removed because the recipe is gone or owned by someone else
}

// Run sweeps every Interval until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			res, err := r.Sweep(ctx)
			if err != nil {
				r.Log.WithError(err).Error("reconcile: sweep failed")
				continue
			}
			if res.Linked > 0 || res.Unlinked > 0 {
				r.Log.WithFields(logrus.Fields{"linked": res.Linked, "unlinked": res.Unlinked}).Info("reconcile: repaired owner lists")
			}
		}
	}
}

// Sweep makes one repair pass.  Individual repair failures are logged and
// skipped; the next sweep retries them.
func (r *Reconciler) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	// Users before recipes: a recipe created and linked in between can then
	// only be re-added, never unlinked.
	users, err := r.Users.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list users: %w", err)
	}
	owners, err := r.Recipes.Owners(ctx)
	if err != nil {
		return res, fmt.Errorf("list recipe owners: %w", err)
	}

	ownerOf := make(map[primitive.ObjectID]primitive.ObjectID, len(owners))
	for _, o := range owners {
		ownerOf[o.ID] = o.User
	}
	listed := make(map[primitive.ObjectID][]primitive.ObjectID, len(users))
	for _, u := range users {
		listed[u.ID] = u.Recipes
	}

	for _, o := range owners {
		recipes, ok := listed[o.User]
		if !ok || slices.Contains(recipes, o.ID) {
			continue
		}
		if err := r.Users.AddRecipe(ctx, o.User, o.ID); err != nil {
			r.Log.WithError(err).WithField("recipe_id", o.ID.Hex()).Warn("reconcile: link failed")
			continue
		}
		res.Linked++
	}

	for _, u := range users {
		for _, id := range u.Recipes {
			if owner, ok := ownerOf[id]; ok && owner == u.ID {
				continue
			}
			if err := r.Users.RemoveRecipe(ctx, u.ID, id); err != nil {
				r.Log.WithError(err).WithField("recipe_id", id.Hex()).Warn("reconcile: unlink failed")
				continue
			}
			res.Unlinked++
		}
	}
	return res, nil
}
