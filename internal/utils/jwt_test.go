package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

const testSecret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	in := model.Identity{ID: "64b7f0c2a1b2c3d4e5f60718", Email: "ann@example.com", Role: model.RoleUser}

	tok, err := IssueToken(testSecret, in, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	out, err := VerifyToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestIssueRequiresIDAndRole(t *testing.T) {
	_, err := IssueToken(testSecret, model.Identity{Email: "x@example.com"}, time.Hour)
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	valid, err := IssueToken(testSecret, model.Identity{ID: "1", Role: model.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, model.Identity{ID: "1", Role: model.RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": "1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id": "1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "1", "role": "user",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]struct {
		secret string
		raw    string
	}{
		"wrong secret": {"other", valid.Token},
		"expired":      {testSecret, expired.Token},
		"alg none":     {testSecret, none},
		"alg HS512":    {testSecret, hs512},
		"missing role": {testSecret, noRole},
		"missing exp":  {testSecret, noExp},
		"garbage":      {testSecret, "not.a.jwt"},
		"empty":        {testSecret, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := VerifyToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}

func TestPasswordHashingRejectsBadCost(t *testing.T) {
	_, err := HashPassword("hunter22", 2)
	assert.Error(t, err)
	_, err = HashPassword("hunter22", 40)
	assert.Error(t, err)
}

func TestPasswordHashingRejectsOverlongInput(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1), 4)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// 72 bytes is still accepted
	hash, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, strings.Repeat("a", MaxPasswordBytes)))
}
