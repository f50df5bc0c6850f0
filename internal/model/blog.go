package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a document in the `blogs` collection.  Author references the
// owning user.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description" json:"description"`
	Author      primitive.ObjectID `bson:"author" json:"author"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BlogPatch lists the fields an update may change.
type BlogPatch struct {
	Title       *string
	Content     *string
	Image       *string
	Description *string
	Category    *string
	Tags        []string
}
