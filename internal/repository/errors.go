// Package repository implements data access over MySQL. This file defines
// sentinel errors shared across repositories so higher layers can
// distinguish failure scenarios without inspecting driver errors: the auth
// service maps ErrDuplicateEmail onto its own duplicate-registration error,
// and handlers translate ErrNotFound into HTTP 404.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert would violate the unique
// email constraint on users. The store is the authority on uniqueness; a
// racing insert surfaces here rather than as a raw driver error.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrDuplicateCode is returned when a product code insert collides with an
// existing uuid code.
var ErrDuplicateCode = errors.New("code already exists")
