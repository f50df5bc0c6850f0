package model

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a document in the `ratings` collection.  Several ratings by the
// same user on the same recipe are all kept.
type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Recipe    primitive.ObjectID `bson:"recipe" json:"recipe"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// AverageRating returns the arithmetic mean of the rating values rounded to
// one decimal.  ok is false when there are no ratings.
func AverageRating(ratings []Rating) (avg float64, ok bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10, true
}
