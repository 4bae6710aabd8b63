package follows

import "errors"

var (
	ErrSelfFollow       = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrUserNotFound     = errors.New("user not found")
)
