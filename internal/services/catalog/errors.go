package catalog

import "errors"

var (
	ErrContentNotFound       = errors.New("content not found")
	ErrUpstreamUnavailable   = errors.New("content provider is unavailable, try again later")
	ErrProviderNotConfigured = errors.New("content provider is not configured")
	ErrInvalidRef            = errors.New("invalid content id")
	ErrInvalidContentType    = errors.New("content type must be movie or book")
	ErrEmptyQuery            = errors.New("search query is required")
)
