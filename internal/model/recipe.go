package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe privacy values.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Instructions holds the ordered preparation steps of a recipe.
type Instructions struct {
	Steps []string `bson:"steps" json:"steps" validate:"required,min=1,dive,required"`
}

// Nutrition is the per-serving nutrition block of a recipe.
type Nutrition struct {
	Calories *float64 `bson:"calories" json:"calories" validate:"required,gte=0"`
	Fat      string   `bson:"fat" json:"fat" validate:"required"`
	Carbs    string   `bson:"carbs" json:"carbs" validate:"required"`
	Protein  *float64 `bson:"protein" json:"protein" validate:"required,gte=0"`
}

// Recipe is a document in the `recipes` collection.  User references the
// owning user; only that user or an admin may change or delete it.
type Recipe struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	RecipeName         string               `bson:"recipe_name" json:"recipe_name"`
	Category           string               `bson:"category" json:"category"`
	Image              string               `bson:"image" json:"image"`
	PrepTime           float64              `bson:"prep_time" json:"prep_time"`
	CookTime           float64              `bson:"cook_time,omitempty" json:"cook_time,omitempty"`
	RecipeMakingTime   float64              `bson:"recipe_making_time" json:"recipe_making_time"`
	Ingredients        []string             `bson:"ingredients" json:"ingredients"`
	RecipeInstructions Instructions         `bson:"recipe_instructions" json:"recipe_instructions"`
	Nutrition          Nutrition            `bson:"nutrition" json:"nutrition"`
	User               primitive.ObjectID   `bson:"user" json:"user"`
	Privacy            string               `bson:"privacy" json:"privacy"`
	Comments           []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// RecipePatch lists the fields an update may change.  Nil fields are left
// untouched.
type RecipePatch struct {
	RecipeName         *string
	Category           *string
	Image              *string
	PrepTime           *float64
	CookTime           *float64
	RecipeMakingTime   *float64
	Ingredients        []string
	RecipeInstructions *Instructions
	Nutrition          *Nutrition
	Privacy            *string
}

// RecipeQuery is the filter and page window of a recipe listing.
type RecipeQuery struct {
	Keyword  string // case-insensitive literal match on recipe_name
	Category string // exact match
	Privacy  string // exact match
	Skip     int64
	Limit    int64
}

// RecipeOwner is the (recipe, owner) projection used by the repair sweep.
type RecipeOwner struct {
	ID   primitive.ObjectID `bson:"_id"`
	User primitive.ObjectID `bson:"user"`
}
