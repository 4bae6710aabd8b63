package main

import (
	"net/http"

	"kutuphanem/proj/internal/domain/fields"

	"github.com/go-chi/chi/v5"
)

type rateRequest struct {
	ContentType string     `json:"content_type" validate:"required,contenttype"`
	ContentID   contentRef `json:"content_id" validate:"required"`
	Rating      int        `json:"rating" validate:"required,min=1,max=10" errorMsg:"Rating must be between 1 and 10"`
}

func (app *Application) rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user := contextGetUser(r)
	summary, err := app.services.Ratings.Rate(r.Context(), user.ID, fields.ContentType(req.ContentType), string(req.ContentID), req.Rating)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"summary": summary}, "Rating saved")
}

func (app *Application) getMyRating(w http.ResponseWriter, r *http.Request) {
	ct, ok := app.extractContentType(w, r)
	if !ok {
		return
	}
	user := contextGetUser(r)
	rating, err := app.services.Ratings.GetMine(r.Context(), user.ID, ct, chi.URLParam(r, "contentId"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"rating": rating}, "")
}

func (app *Application) deleteRating(w http.ResponseWriter, r *http.Request) {
	ct, ok := app.extractContentType(w, r)
	if !ok {
		return
	}
	user := contextGetUser(r)
	summary, err := app.services.Ratings.Delete(r.Context(), user.ID, ct, chi.URLParam(r, "contentId"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"summary": summary}, "Rating deleted")
}
