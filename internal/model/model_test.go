package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   float64
		ok     bool
	}{
		{"none", nil, 0, false},
		{"single", []int{5}, 5.0, true},
		{"half", []int{4, 5}, 4.5, true},
		{"rounded", []int{1, 2, 2}, 1.7, true},
		{"duplicates kept", []int{3, 3, 3, 4}, 3.3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := make([]Rating, 0, len(tc.values))
			for _, v := range tc.values {
				rs = append(rs, Rating{Rating: v})
			}
			got, ok := AverageRating(rs)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestIdentityOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	id := Identity{ID: owner.Hex(), Role: RoleUser}

	assert.True(t, id.Owns(owner))
	assert.False(t, id.Owns(primitive.NewObjectID()))
	assert.False(t, id.Owns(primitive.NilObjectID))
	assert.False(t, id.IsAdmin())
	assert.True(t, Identity{Role: RoleAdmin}.IsAdmin())
}

func TestCommentTargetRoundTrip(t *testing.T) {
	target := CommentTarget{Kind: TargetBlog, ID: primitive.NewObjectID()}
	c := NewComment(primitive.NewObjectID(), target, "nice")

	assert.Equal(t, target, c.Target())
	assert.True(t, TargetRecipe.Valid())
	assert.False(t, TargetKind("Video").Valid())
}
