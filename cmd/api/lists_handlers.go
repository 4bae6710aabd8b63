package main

import (
	"net/http"

	"kutuphanem/proj/internal/domain/fields"

	"github.com/go-chi/chi/v5"
)

const defaultListItemsLimit = 20

type userListRequest struct {
	ContentType string     `json:"content_type" validate:"required,contenttype"`
	ContentID   contentRef `json:"content_id" validate:"required"`
	ListType    string     `json:"list_type" validate:"required,listtype"`
}

type customListRequest struct {
	Name        string  `json:"name" validate:"notblank,max=100"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type updateCustomListRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type customItemRequest struct {
	ContentType string     `json:"content_type" validate:"required,contenttype"`
	ContentID   contentRef `json:"content_id" validate:"required"`
}

func (app *Application) addToUserList(w http.ResponseWriter, r *http.Request) {
	var req userListRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := app.services.Lists.Add(r.Context(), contextGetUser(r).ID,
		fields.ListType(req.ListType), fields.ContentType(req.ContentType), string(req.ContentID))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"item": item}, "Added to list")
}

func (app *Application) removeFromUserList(w http.ResponseWriter, r *http.Request) {
	var req userListRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	err := app.services.Lists.Remove(r.Context(), contextGetUser(r).ID,
		fields.ListType(req.ListType), fields.ContentType(req.ContentType), string(req.ContentID))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Removed from list")
}

func (app *Application) getUserList(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	lt := fields.ListType(chi.URLParam(r, "listType"))
	if !lt.Valid() {
		app.Http.BadRequest(w, r, "list type must be one of watched, to_watch, read, to_read")
		return
	}
	f, ok := app.readFilters(w, r, defaultListItemsLimit)
	if !ok {
		return
	}
	items, total, err := app.services.Lists.Items(r.Context(), userID, lt, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, pageEnvelop("items", items, f, total), "")
}

func (app *Application) createCustomList(w http.ResponseWriter, r *http.Request) {
	var req customListRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	list, err := app.services.Lists.CreateCustom(r.Context(), contextGetUser(r).ID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"list": list}, "List created")
}

func (app *Application) getUserCustomLists(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	lists, err := app.services.Lists.UserCustomLists(r.Context(), contextGetUser(r).ID, ownerID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"lists": lists}, "")
}

func (app *Application) getCustomList(w http.ResponseWriter, r *http.Request) {
	listID, ok := app.extractIDParam(w, r, "listId")
	if !ok {
		return
	}
	list, err := app.services.Lists.GetCustom(r.Context(), contextGetUser(r).ID, listID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"list": list}, "")
}

func (app *Application) updateCustomList(w http.ResponseWriter, r *http.Request) {
	listID, ok := app.extractIDParam(w, r, "listId")
	if !ok {
		return
	}
	var req updateCustomListRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	list, err := app.services.Lists.UpdateCustom(r.Context(), contextGetUser(r).ID, listID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"list": list}, "List updated")
}

func (app *Application) deleteCustomList(w http.ResponseWriter, r *http.Request) {
	listID, ok := app.extractIDParam(w, r, "listId")
	if !ok {
		return
	}
	if err := app.services.Lists.DeleteCustom(r.Context(), contextGetUser(r).ID, listID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "List deleted")
}

func (app *Application) addCustomListItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := app.extractIDParam(w, r, "listId")
	if !ok {
		return
	}
	var req customItemRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := app.services.Lists.AddCustomItem(r.Context(), contextGetUser(r).ID, listID,
		fields.ContentType(req.ContentType), string(req.ContentID))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"item": item}, "Added to list")
}

func (app *Application) getCustomListItems(w http.ResponseWriter, r *http.Request) {
	listID, ok := app.extractIDParam(w, r, "listId")
	if !ok {
		return
	}
	items, err := app.services.Lists.CustomItems(r.Context(), contextGetUser(r).ID, listID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"items": items}, "")
}

func (app *Application) removeCustomListItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := app.extractIDParam(w, r, "listId")
	if !ok {
		return
	}
	itemID, ok := app.extractIDParam(w, r, "itemId")
	if !ok {
		return
	}
	if err := app.services.Lists.RemoveCustomItem(r.Context(), contextGetUser(r).ID, listID, itemID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Removed from list")
}
