package users

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrForbidden         = errors.New("you can only change your own profile")
	ErrEmptyQuery        = errors.New("search query is required")
	ErrAvatarTooLarge    = errors.New("avatar must not exceed 5 MB")
	ErrUnsupportedAvatar = errors.New("avatar must be a jpeg, png, gif or webp image")
	ErrUploadedAvatarURL = errors.New("uploaded avatars can only be set through the avatar upload")
)
