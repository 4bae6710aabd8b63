package main

import (
	"errors"
	"net/http"

	"kutuphanem/proj/internal/services/auth"
	"kutuphanem/proj/internal/services/catalog"
	"kutuphanem/proj/internal/services/follows"
	"kutuphanem/proj/internal/services/likes"
	"kutuphanem/proj/internal/services/lists"
	"kutuphanem/proj/internal/services/ratings"
	"kutuphanem/proj/internal/services/reviews"
	"kutuphanem/proj/internal/services/search"
	"kutuphanem/proj/internal/services/users"
)

var (
	badRequestErrors = []error{
		catalog.ErrInvalidRef,
		catalog.ErrInvalidContentType,
		catalog.ErrEmptyQuery,
		ratings.ErrInvalidRating,
		reviews.ErrEmptyText,
		lists.ErrInvalidListType,
		lists.ErrContentTypeMismatch,
		lists.ErrAlreadyInList,
		lists.ErrNameRequired,
		follows.ErrSelfFollow,
		follows.ErrAlreadyFollowing,
		likes.ErrInvalidTarget,
		likes.ErrInvalidTargetID,
		search.ErrEmptySearch,
		search.ErrInvalidType,
		search.ErrInvalidMinRating,
		users.ErrEmptyQuery,
		users.ErrAvatarTooLarge,
		users.ErrUnsupportedAvatar,
		users.ErrUploadedAvatarURL,
		auth.ErrEmailTaken,
		auth.ErrUsernameTaken,
		auth.ErrInvalidResetToken,
		auth.ErrPasswordTooLong,
	}
	notFoundErrors = []error{
		catalog.ErrContentNotFound,
		ratings.ErrRatingNotFound,
		reviews.ErrReviewNotFound,
		reviews.ErrCommentNotFound,
		lists.ErrListNotFound,
		lists.ErrItemNotFound,
		follows.ErrUserNotFound,
		users.ErrUserNotFound,
		auth.ErrUserNotFound,
	}
	forbiddenErrors = []error{
		reviews.ErrForbidden,
		lists.ErrForbidden,
		users.ErrForbidden,
	}
	unauthorizedErrors = []error{
		auth.ErrInvalidCredentials,
		auth.ErrInvalidToken,
	}
	unavailableErrors = []error{
		catalog.ErrUpstreamUnavailable,
	}
	// misconfiguration is a server fault, but the message is safe to show
	serverErrorsWithMessage = []error{
		catalog.ErrProviderNotConfigured,
	}
)

func isAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

// serviceError answers with the status matching a service sentinel error.
// Anything unknown is a 500.
func (app *Application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if target, ok := isAny(err, badRequestErrors); ok {
		app.Http.BadRequest(w, r, target.Error())
		return
	}
	if target, ok := isAny(err, notFoundErrors); ok {
		app.Http.NotFound(w, r, target.Error())
		return
	}
	if target, ok := isAny(err, forbiddenErrors); ok {
		app.Http.Forbidden(w, r, target.Error())
		return
	}
	if target, ok := isAny(err, unauthorizedErrors); ok {
		app.Http.Unauthorized(w, r, target.Error())
		return
	}
	if _, ok := isAny(err, unavailableErrors); ok {
		app.Http.ServiceUnavailable(w, r, err, "Content provider is unavailable, please try again later")
		return
	}
	if target, ok := isAny(err, serverErrorsWithMessage); ok {
		app.Http.ServerError(w, r, err, target.Error())
		return
	}
	app.Http.ServerError(w, r, err, "")
}
