package fields

import (
	"fmt"
	"strings"
)

type ContentType string

const (
	ContentMovie ContentType = "movie"
	ContentBook  ContentType = "book"
)

func (c ContentType) Valid() bool {
	return c == ContentMovie || c == ContentBook
}

func ParseContentType(s string) (ContentType, error) {
	c := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return c, nil
}

// ListType is one of the four fixed per-user lists.
type ListType string

const (
	ListWatched ListType = "watched"
	ListToWatch ListType = "to_watch"
	ListRead    ListType = "read"
	ListToRead  ListType = "to_read"
)

func (l ListType) Valid() bool {
	switch l {
	case ListWatched, ListToWatch, ListRead, ListToRead:
		return true
	}
	return false
}

// ContentType returns the kind of content the list holds.
func (l ListType) ContentType() ContentType {
	if l == ListWatched || l == ListToWatch {
		return ContentMovie
	}
	return ContentBook
}

type LikeTarget string

const (
	LikeRating  LikeTarget = "rating"
	LikeReview  LikeTarget = "review"
	LikeComment LikeTarget = "comment"
)

func (t LikeTarget) Valid() bool {
	return t == LikeRating || t == LikeReview || t == LikeComment
}

type ActivityType string

const (
	ActivityRating ActivityType = "rating"
	ActivityReview ActivityType = "review"
)
