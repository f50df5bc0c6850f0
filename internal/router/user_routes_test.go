package router

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupConflictsAndValidation(t *testing.T) {
	s := newServer(t)
	s.user("ann", "")

	cases := []struct {
		name string
		body map[string]string
		msg  string
	}{
		{"duplicate email", map[string]string{"username": "ann2", "email": "ANN@example.com", "password": "x"}, "Email already exists"},
		{"duplicate username", map[string]string{"username": "ann", "email": "other@example.com", "password": "x"}, "Username already exists"},
		{"bad role", map[string]string{"username": "eve", "email": "eve@example.com", "password": "x", "role": "root"}, "Invalid role"},
		{"missing password", map[string]string{"username": "eve", "email": "eve@example.com"}, ""},
		{"bad email", map[string]string{"username": "eve", "email": "eve", "password": "x"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/users/signup", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, messageOf(t, rec))
			}
		})
	}
}

type loginBody struct {
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	s.user("ann", "admin")

	rec := s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": "nobody@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid User", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Password", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": "ann@example.com", "password": "pw-ann"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[loginBody](t, rec)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "ann", body.User.Username)
	assert.Equal(t, "admin", body.User.Role)
}

func TestMe(t *testing.T) {
	s := newServer(t)
	ann := s.user("ann", "")

	rec := s.do(http.MethodGet, "/api/users/me", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "ann", me["username"])
	assert.Equal(t, "user", me["role"])
	assert.NotContains(t, me, "password")
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	s := newServer(t)

	for name, pw := range map[string]string{
		"ascii":     strings.Repeat("p", 80),
		"multibyte": strings.Repeat("密", 30), // 30 runes, 90 bytes
	} {
		t.Run(name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/users/signup", "", map[string]string{
				"username": "long-" + name, "email": name + "@example.com", "password": pw,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Password must be at most 72 bytes", messageOf(t, rec))
		})
	}

	rec := s.do(http.MethodPost, "/api/users/signup", "", map[string]string{
		"username": "edge", "email": "edge@example.com", "password": strings.Repeat("p", 72),
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
