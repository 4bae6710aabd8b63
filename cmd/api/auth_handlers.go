package main

import (
	"net/http"
)

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50" errorMsg:"Username must be between 3 and 50 characters"`
	Email           string `json:"email" validate:"required,max=255,email"`
	Password        string `json:"password" validate:"required,min=6,maxbytes=72" errorMsg:"Password must be between 6 and 72 characters"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password" errorMsg:"Passwords do not match"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := app.services.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"token": res.Token, "user": res.User}, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=255,email"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := app.services.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"token": res.Token, "user": res.User}, "Logged in successfully")
}

func (app *Application) me(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Auth.Me(r.Context(), contextGetUser(r).ID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,max=255,email"`
}

const forgotPasswordMsg = "If an account with that email exists, a password reset link has been sent"

func (app *Application) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	link, err := app.services.Auth.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	var data envelop
	if link != "" {
		data = envelop{"resetLink": link}
	}
	app.Http.Ok(w, r, data, forgotPasswordMsg)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72" errorMsg:"Password must be between 6 and 72 characters"`
}

func (app *Application) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	if err := app.services.Auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Password has been reset successfully")
}
