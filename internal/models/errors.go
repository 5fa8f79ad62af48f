package models

import "errors"

// ErrNotFound reports an absent record. It is a normal negative
// result in lookup contexts, not an internal failure.
var ErrNotFound = errors.New("not found")
