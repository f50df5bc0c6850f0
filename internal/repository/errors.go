// Package repository defines the document store interfaces used by the HTTP
// handlers and their MongoDB implementations.  The sentinel errors below let
// handlers tell failure scenarios apart without knowing which backend is in
// use.
package repository

import "errors"

// ErrNotFound is returned when the addressed document does not exist.
// Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists and ErrUsernameExists are returned when a user insert
// collides with a unique field.  Handlers translate them into an HTTP 400.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)
