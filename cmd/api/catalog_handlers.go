package main

import (
	"net/http"

	"kutuphanem/proj/internal/clients/catalog/tmdb"

	"github.com/go-chi/chi/v5"
)

type providerSearchQuery struct {
	Query      string `schema:"query"`
	Page       int    `schema:"page"`
	MaxResults int    `schema:"maxResults"`
}

func moviePage(p *tmdb.Page) envelop {
	return envelop{
		"page":          p.Page,
		"results":       p.Results,
		"total_pages":   p.TotalPages,
		"total_results": p.TotalResults,
	}
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	var q providerSearchQuery
	if !app.readQuery(w, r, &q) {
		return
	}
	page, err := app.services.Catalog.SearchMovies(r.Context(), q.Query, q.Page)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, moviePage(page), "")
}

func (app *Application) popularMovies(w http.ResponseWriter, r *http.Request) {
	page, err := app.services.Catalog.PopularMovies(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, moviePage(page), "")
}

func (app *Application) topRatedMovies(w http.ResponseWriter, r *http.Request) {
	page, err := app.services.Catalog.TopRatedMovies(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, moviePage(page), "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := app.services.Catalog.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) searchBooks(w http.ResponseWriter, r *http.Request) {
	var q providerSearchQuery
	if !app.readQuery(w, r, &q) {
		return
	}
	vs, err := app.services.Catalog.SearchBooks(r.Context(), q.Query, q.Page, q.MaxResults)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"kind": vs.Kind, "totalItems": vs.TotalItems, "items": vs.Items}, "")
}

func (app *Application) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := app.services.Catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"book": book}, "")
}
