package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind discriminates what a comment is attached to.
type TargetKind string

const (
	TargetRecipe TargetKind = "Recipe"
	TargetBlog   TargetKind = "Blog"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool { return k == TargetRecipe || k == TargetBlog }

// CommentTarget is the tagged union {kind, id} a comment points at.  It is
// resolved to a concrete recipe or blog by switching on Kind.
type CommentTarget struct {
	Kind TargetKind
	ID   primitive.ObjectID
}

// Comment is a document in the `comments` collection.  The target is stored
// flat as commentType/commentId.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	CommentType TargetKind         `bson:"commentType" json:"commentType"`
	CommentID   primitive.ObjectID `bson:"commentId" json:"commentId"`
	Text        string             `bson:"text" json:"text"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// NewComment builds a comment by user on target.
func NewComment(user primitive.ObjectID, target CommentTarget, text string) Comment {
	return Comment{
		User:        user,
		CommentType: target.Kind,
		CommentID:   target.ID,
		Text:        text,
	}
}

// Target returns the comment's target as a tagged union.
func (c Comment) Target() CommentTarget {
	return CommentTarget{Kind: c.CommentType, ID: c.CommentID}
}
