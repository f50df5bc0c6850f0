package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// ErrInvalidToken is returned by VerifyToken for every rejected token.  The
// cause (bad signature, wrong algorithm, malformed input, expiry, missing
// claims) is wrapped for logging but never shown to the caller.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT along with its expiry.  The Token field
// contains the JWT string sent back in the Authorization header.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// identityClaims is the token payload: {id, email, role} plus the standard
// exp and iat claims.
type identityClaims struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken builds and signs an HS256 JWT carrying the identity.  The token
// expires ttl after issue and cannot be revoked before that.
func IssueToken(secret string, id model.Identity, ttl time.Duration) (AccessToken, error) {
	if id.ID == "" || id.Role == "" {
		return AccessToken{}, errors.New("identity needs id and role")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := identityClaims{
		ID:    id.ID,
		Email: id.Email,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyToken parses raw, checks its HS256 signature against secret and its
// expiry, and returns the identity it carries.
func VerifyToken(secret, raw string) (model.Identity, error) {
	var claims identityClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		// Only HMAC-SHA256 is accepted; "none" and asymmetric algorithms fail.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.ID == "" || claims.Role == "" {
		return model.Identity{}, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}
	return model.Identity{ID: claims.ID, Email: claims.Email, Role: claims.Role}, nil
}
