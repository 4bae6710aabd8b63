package main

import (
	"net/http"

	"kutuphanem/proj/internal/services/feed"
	"kutuphanem/proj/internal/services/search"
)

func (app *Application) getFeed(w http.ResponseWriter, r *http.Request) {
	f, ok := app.readFilters(w, r, feed.DefaultFeedLimit)
	if !ok {
		return
	}
	page, err := app.services.Feed.GetFeed(r.Context(), contextGetUser(r).ID, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"activities": page.Activities, "page": page.Page, "limit": page.Limit, "hasMore": page.HasMore}, "")
}

func (app *Application) getUserActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r, feed.DefaultActivityLimit)
	if !ok {
		return
	}
	page, err := app.services.Feed.GetUserActivities(r.Context(), userID, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"activities": page.Activities, "page": page.Page, "limit": page.Limit, "hasMore": page.HasMore}, "")
}

func (app *Application) search(w http.ResponseWriter, r *http.Request) {
	var p search.Params
	if !app.readQuery(w, r, &p) {
		return
	}
	res, err := app.services.Search.Search(r.Context(), p)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": res.Movies, "books": res.Books}, "")
}

type rankingQuery struct {
	Type string `schema:"type"`
}

func (app *Application) searchPopular(w http.ResponseWriter, r *http.Request) {
	var q rankingQuery
	if !app.readQuery(w, r, &q) {
		return
	}
	items, err := app.services.Search.Popular(r.Context(), q.Type)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"results": items}, "")
}

func (app *Application) searchTopRated(w http.ResponseWriter, r *http.Request) {
	var q rankingQuery
	if !app.readQuery(w, r, &q) {
		return
	}
	items, err := app.services.Search.TopRated(r.Context(), q.Type)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"results": items}, "")
}
