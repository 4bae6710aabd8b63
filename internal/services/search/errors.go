package search

import "errors"

var (
	ErrEmptySearch      = errors.New("provide a search query, a content type or at least one filter")
	ErrInvalidType      = errors.New("type must be movie, book or all")
	ErrInvalidMinRating = errors.New("minRating must be between 0 and 10")
)
