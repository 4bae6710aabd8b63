package reviews

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyText       = errors.New("text must not be empty")
	ErrForbidden       = errors.New("you can only modify your own content")
)
