package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/recipe-blog-api/internal/config"
	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
	"github.com/iliyamo/recipe-blog-api/internal/utils"
)

// UserHandler bundles dependencies for account endpoints.
type UserHandler struct {
	Cfg   *config.Config
	Users repository.UserStore
	Log   logrus.FieldLogger
}

func NewUserHandler(cfg *config.Config, users repository.UserStore, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Log: log}
}

// ----- DTOs -----

type signupReq struct {
	Role           string `json:"role" validate:"omitempty,role"`
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,max=72"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResp struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

const msgPasswordTooLong = "Password must be at most 72 bytes"

// Signup creates an account.  The role defaults to "user"; any caller may
// ask for "admin".
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return message(c, http.StatusBadRequest, msgPasswordTooLong)
	}
	if err != nil {
		return internalError(c, h.Log, "signup.hash", err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u := &model.User{
		Username:       strings.TrimSpace(req.Username),
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           role,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
		Bio:            req.Bio,
	}
	switch err := h.Users.Create(ctx, u); {
	case errors.Is(err, repository.ErrEmailExists):
		return message(c, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, repository.ErrUsernameExists):
		return message(c, http.StatusBadRequest, "Username already exists")
	case err != nil:
		return internalError(c, h.Log, "signup.create", err)
	}
	return message(c, http.StatusCreated, "User created successfully")
}

// Login checks the credentials and returns a token valid for Cfg.TokenTTL.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if msg := bindValid(c, &req); msg != "" {
		return message(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusBadRequest, "Invalid User")
	}
	if err != nil {
		return internalError(c, h.Log, "login.lookup", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return message(c, http.StatusBadRequest, "Invalid Password")
	}

	tok, err := utils.IssueToken(h.Cfg.JWTSecret, model.Identity{ID: u.ID.Hex(), Email: u.Email, Role: u.Role}, h.Cfg.TokenTTL)
	if err != nil {
		return internalError(c, h.Log, "login.token", err)
	}
	return c.JSON(http.StatusOK, loginResp{Token: tok.Token, User: loginUser{Username: u.Username, Role: u.Role}})
}

// List returns every user without password hashes.  Admin only.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return internalError(c, h.Log, "users.list", err)
	}
	return c.JSON(http.StatusOK, users)
}

// Me returns the authenticated user's own record.
func (h *UserHandler) Me(c echo.Context) error {
	_, uid, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return internalError(c, h.Log, "users.me", err)
	}
	return c.JSON(http.StatusOK, u)
}
