package main

import (
	"net/http"

	"kutuphanem/proj/internal/domain/fields"

	"github.com/go-chi/chi/v5"
)

func (app *Application) follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if err := app.services.Follows.Follow(r.Context(), contextGetUser(r).ID, userID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"following": true}, "Followed")
}

func (app *Application) unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if err := app.services.Follows.Unfollow(r.Context(), contextGetUser(r).ID, userID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"following": false}, "Unfollowed")
}

func (app *Application) followStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	following, err := app.services.Follows.IsFollowing(r.Context(), contextGetUser(r).ID, userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"isFollowing": following}, "")
}

func (app *Application) followers(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	users, err := app.services.Follows.Followers(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"followers": users}, "")
}

func (app *Application) following(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	users, err := app.services.Follows.Following(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"following": users}, "")
}

func (app *Application) extractLikeTarget(w http.ResponseWriter, r *http.Request) (fields.LikeTarget, int64, bool) {
	target := fields.LikeTarget(chi.URLParam(r, "targetType"))
	if !target.Valid() {
		app.Http.BadRequest(w, r, "target type must be one of rating, review, comment")
		return "", 0, false
	}
	id, ok := app.extractIDParam(w, r, "targetId")
	return target, id, ok
}

func (app *Application) toggleLike(w http.ResponseWriter, r *http.Request) {
	target, id, ok := app.extractLikeTarget(w, r)
	if !ok {
		return
	}
	liked, count, err := app.services.Likes.Toggle(r.Context(), contextGetUser(r).ID, target, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"liked": liked, "count": count}, "")
}

func (app *Application) likeStatus(w http.ResponseWriter, r *http.Request) {
	target, id, ok := app.extractLikeTarget(w, r)
	if !ok {
		return
	}
	liked, err := app.services.Likes.Status(r.Context(), contextGetUser(r).ID, target, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"liked": liked}, "")
}

func (app *Application) likeCount(w http.ResponseWriter, r *http.Request) {
	target, id, ok := app.extractLikeTarget(w, r)
	if !ok {
		return
	}
	count, err := app.services.Likes.Count(r.Context(), target, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"count": count}, "")
}
