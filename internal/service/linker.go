package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/queue"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
)

// LinkPublisher hands a failed owner-list update to the repair queue.
type LinkPublisher interface {
	PublishRecipeLink(ctx context.Context, ev queue.RecipeLinkEvent) error
}

// RecipeLinker keeps User.Recipes in step with the recipes collection.
//
// The recipe write is the primary write and is never rolled back.  The
// owner-list update that follows is best-effort: if it fails, a repair
// event goes to the queue (when Publisher is set), and whatever is still
// wrong afterwards is fixed by the next Reconciler sweep.  Until then the
// owner's list may miss a new recipe or still name a deleted one.
type RecipeLinker struct {
	Users     repository.UserStore
	Publisher LinkPublisher // optional
	Log       logrus.FieldLogger
}

// Link adds recipeID to the owner's list.  It never fails the caller.
func (l *RecipeLinker) Link(ctx context.Context, userID, recipeID primitive.ObjectID) {
	l.apply(ctx, queue.OpLink, userID, recipeID)
}

// Unlink removes recipeID from the owner's list.  It never fails the caller.
func (l *RecipeLinker) Unlink(ctx context.Context, userID, recipeID primitive.ObjectID) {
	l.apply(ctx, queue.OpUnlink, userID, recipeID)
}

func (l *RecipeLinker) apply(ctx context.Context, op queue.LinkOp, userID, recipeID primitive.ObjectID) {
	err := l.do(ctx, op, userID, recipeID)
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return
	}
	log := l.Log.WithFields(logrus.Fields{"op": op, "user_id": userID.Hex(), "recipe_id": recipeID.Hex()})
	log.WithError(err).Warn("recipe link failed")
	if l.Publisher == nil {
		return
	}
	if err := l.Publisher.PublishRecipeLink(context.WithoutCancel(ctx), queue.NewRecipeLinkEvent(op, userID, recipeID)); err != nil {
		log.WithError(err).Error("recipe link repair not queued; left to reconciler")
	}
}

// Apply executes a queued repair.  A user that no longer exists is not an
// error.
func (l *RecipeLinker) Apply(ctx context.Context, ev queue.RecipeLinkEvent) error {
	userID, recipeID, err := ev.IDs()
	if err != nil {
		return err
	}
	if err := l.do(ctx, ev.Op, userID, recipeID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("apply %s: %w", ev.Op, err)
	}
	return nil
}

func (l *RecipeLinker) do(ctx context.Context, op queue.LinkOp, userID, recipeID primitive.ObjectID) error {
	switch op {
	case queue.OpLink:
		return l.Users.AddRecipe(ctx, userID, recipeID)
	case queue.OpUnlink:
		return l.Users.RemoveRecipe(ctx, userID, recipeID)
	default:
		return fmt.Errorf("unknown op %q", op)
	}
}
