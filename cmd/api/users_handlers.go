package main

import (
	"errors"
	"net/http"

	"kutuphanem/proj/internal/services/users"
)

type searchUsersQuery struct {
	Query string `schema:"query"`
	Limit int    `schema:"limit"`
}

func (app *Application) searchUsers(w http.ResponseWriter, r *http.Request) {
	var q searchUsersQuery
	if !app.readQuery(w, r, &q) {
		return
	}
	found, err := app.services.Users.Search(r.Context(), q.Query, q.Limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"users": found}, "")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	profile, err := app.services.Users.GetProfile(r.Context(), contextGetUser(r).ID, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": profile}, "")
}

type updateUserRequest struct {
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	var req updateUserRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := app.services.Users.Update(r.Context(), contextGetUser(r).ID, id, req.AvatarURL, req.Bio)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "Profile updated")
}

func (app *Application) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if contextGetUser(r).ID != id {
		app.serviceError(w, r, users.ErrForbidden)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, users.MaxAvatarSize+1<<20)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			app.serviceError(w, r, users.ErrAvatarTooLarge)
			return
		}
		app.Http.FailedValidation(w, r, map[string]string{"avatar": "An image file is required"})
		return
	}
	defer file.Close()

	avatarURL, err := app.services.Users.UploadAvatar(r.Context(), contextGetUser(r).ID, id, file)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"avatar_url": avatarURL}, "Avatar uploaded")
}
