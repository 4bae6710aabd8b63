package lists

import "errors"

var (
	ErrInvalidListType     = errors.New("invalid list type")
	ErrContentTypeMismatch = errors.New("content type does not match list type")
	ErrAlreadyInList       = errors.New("already in list")
	ErrListNotFound        = errors.New("list not found")
	ErrItemNotFound        = errors.New("list item not found")
	ErrNameRequired        = errors.New("list name is required")
	ErrForbidden           = errors.New("you can only modify your own lists")
)
