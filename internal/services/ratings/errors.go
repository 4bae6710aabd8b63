package ratings

import "errors"

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 10")
	ErrRatingNotFound = errors.New("rating not found")
)
