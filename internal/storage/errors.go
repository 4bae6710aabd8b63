package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrReferenceNotFound = errors.New("referenced row not found")
)

var (
	ErrEmailTaken    = fmt.Errorf("email: %w", ErrConflict)
	ErrUsernameTaken = fmt.Errorf("username: %w", ErrConflict)
)
