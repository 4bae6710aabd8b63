package main

import (
	"net/http"

	"kutuphanem/proj/internal/domain/fields"

	"github.com/go-chi/chi/v5"
)

const (
	defaultReviewsLimit  = 10
	defaultCommentsLimit = 20
)

type createReviewRequest struct {
	ContentType string     `json:"content_type" validate:"required,contenttype"`
	ContentID   contentRef `json:"content_id" validate:"required"`
	ReviewText  string     `json:"review_text" validate:"notblank"`
}

type updateReviewRequest struct {
	ReviewText string `json:"review_text" validate:"notblank"`
}

type commentRequest struct {
	CommentText string `json:"comment_text" validate:"notblank"`
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	ct, ok := app.extractContentType(w, r)
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r, defaultReviewsLimit)
	if !ok {
		return
	}
	reviews, total, err := app.services.Reviews.ListForContent(r.Context(), ct, chi.URLParam(r, "contentId"), f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, pageEnvelop("reviews", reviews, f, total), "")
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user := contextGetUser(r)
	review, err := app.services.Reviews.Create(r.Context(), user.ID, fields.ContentType(req.ContentType), string(req.ContentID), req.ReviewText)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "Review created")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var req updateReviewRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	review, err := app.services.Reviews.Update(r.Context(), contextGetUser(r).ID, id, req.ReviewText)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review updated")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), contextGetUser(r).ID, id); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Review deleted")
}

func (app *Application) listComments(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r, defaultCommentsLimit)
	if !ok {
		return
	}
	comments, total, err := app.services.Reviews.ListComments(r.Context(), id, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, pageEnvelop("comments", comments, f, total), "")
}

func (app *Application) addComment(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var req commentRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := app.services.Reviews.AddComment(r.Context(), contextGetUser(r).ID, id, req.CommentText)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "Comment added")
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	commentID, ok := app.extractIDParam(w, r, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := app.services.Reviews.UpdateComment(r.Context(), contextGetUser(r).ID, reviewID, commentID, req.CommentText)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "Comment updated")
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	commentID, ok := app.extractIDParam(w, r, "commentId")
	if !ok {
		return
	}
	comment, err := app.services.Reviews.DeleteComment(r.Context(), contextGetUser(r).ID, reviewID, commentID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "Comment deleted")
}
