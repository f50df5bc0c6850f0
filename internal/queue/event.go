// Package queue defines message payloads exchanged over the message broker
// and the background consumer that applies them.
package queue

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeLinkQueue carries owner-list repairs that could not be applied
// inline.
const RecipeLinkQueue = "recipe.link"

// LinkOp says whether a recipe ID should be added to or removed from its
// owner's recipe list.
type LinkOp string

const (
	OpLink   LinkOp = "link"
	OpUnlink LinkOp = "unlink"
)

// RecipeLinkEvent is published when adding a new recipe to its owner's list
// (or removing a deleted one) failed after the primary write succeeded.
type RecipeLinkEvent struct {
	Op       LinkOp    `json:"op"`
	UserID   string    `json:"user_id"`
	RecipeID string    `json:"recipe_id"`
	At       time.Time `json:"at"`
}

// NewRecipeLinkEvent builds an event stamped with the current time.
func NewRecipeLinkEvent(op LinkOp, userID, recipeID primitive.ObjectID) RecipeLinkEvent {
	return RecipeLinkEvent{Op: op, UserID: userID.Hex(), RecipeID: recipeID.Hex(), At: time.Now().UTC()}
}

// IDs decodes the user and recipe IDs and checks the op.
func (e RecipeLinkEvent) IDs() (userID, recipeID primitive.ObjectID, err error) {
	if e.Op != OpLink && e.Op != OpUnlink {
		return userID, recipeID, fmt.Errorf("unknown op %q", e.Op)
	}
	if userID, err = primitive.ObjectIDFromHex(e.UserID); err != nil {
		return userID, recipeID, fmt.Errorf("user_id: %w", err)
	}
	if recipeID, err = primitive.ObjectIDFromHex(e.RecipeID); err != nil {
		return userID, recipeID, fmt.Errorf("recipe_id: %w", err)
	}
	return userID, recipeID, nil
}
