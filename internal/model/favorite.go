package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite pairs a user with a recipe.  The pair is kept unique by the
// handler checking for an existing pairing before insert, not by an index.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Recipe    primitive.ObjectID `bson:"recipe" json:"recipe"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// FavoriteView is a favorite with its recipe populated.  Recipe is nil when
// the recipe has since been deleted.
type FavoriteView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      primitive.ObjectID `json:"user"`
	Recipe    *Recipe            `json:"recipe"`
	CreatedAt time.Time          `json:"createdAt"`
}
