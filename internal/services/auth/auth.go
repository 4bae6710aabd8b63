package auth

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type UserStorage interface {
	Insert(ctx context.Context, username, email string, passwordHash []byte) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error
	ResetPassword(ctx context.Context, tokenHash string, passwordHash []byte) error
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	log         *slog.Logger
	users       UserStorage
	Mailer      MailProvider
	secret      []byte
	tokenTTL    time.Duration
	frontendURL string
	debug       bool
	hashCost    int
}

func New(log *slog.Logger, cfg *config.Config, users UserStorage, mailer MailProvider) *AuthService {
	return &AuthService{
		log:         log,
		users:       users,
		Mailer:      mailer,
		secret:      []byte(cfg.AppSecret),
		tokenTTL:    cfg.TokenTTL,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
		debug:       cfg.Debug,
		hashCost:    bcrypt.DefaultCost,
	}
}

func (a *AuthService) hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	return hash, err
}

func (a *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := a.NewToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (a *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	const op = "auth.AuthService.Register"
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	log := a.log.With("op", op, "username", username)
	hash, err := a.hashPassword(password)
	if err != nil {
		if !errors.Is(err, ErrPasswordTooLong) {
			log.Error("hashing password", "err", err.Error())
		}
		return nil, err
	}
	user, err := a.users.Insert(ctx, username, email, hash)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailTaken):
			return nil, ErrEmailTaken
		case errors.Is(err, storage.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("user registered", "user_id", user.ID)
	return a.issue(user)
}

// Login returns ErrInvalidCredentials for both unknown emails and wrong
// passwords.
func (a *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op)
	user, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return a.issue(user)
}

func (a *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		a.log.Error(err.Error(), "op", "auth.AuthService.Me")
		return nil, err
	}
	return user, nil
}

// ForgotPassword behaves the same whether or not email is registered. The
// returned link is only non-empty in debug mode.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) (resetLink string, err error) {
	const op = "auth.AuthService.ForgotPassword"
	log := a.log.With("op", op)
	user, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("reset requested for unknown email")
			return "", nil
		}
		log.Error(err.Error())
		return "", err
	}

	token, err := a.sign(Claims{
		UserID:           user.ID,
		Purpose:          PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString()},
	}, ResetTokenTTL)
	if err != nil {
		log.Error("signing reset token", "err", err.Error())
		return "", err
	}
	if err := a.users.SetResetToken(ctx, user.ID, hashToken(token), time.Now().Add(ResetTokenTTL)); err != nil {
		log.Error("storing reset token", "err", err.Error())
		return "", err
	}

	link := a.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	err = a.Mailer.Send(user.Email, "password_reset.html", map[string]any{
		"username": user.Username,
		"resetURL": template.URL(link),
	})
	if err != nil {
		log.Warn("reset email not sent", "user_id", user.ID, "err", err.Error())
	} else {
		log.Info("reset email sent", "user_id", user.ID)
	}
	if a.debug {
		return link, nil
	}
	return "", nil
}

// ResetPassword consumes token and replaces the password. The token must be
// a valid reset token that is still stored for its user.
func (a *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	const op = "auth.AuthService.ResetPassword"
	log := a.log.With("op", op)
	claims, err := a.parse(token)
	if err != nil || claims.Purpose != PurposePasswordReset {
		log.Info("rejected reset token")
		return ErrInvalidResetToken
	}
	hash, err := a.hashPassword(password)
	if err != nil {
		if !errors.Is(err, ErrPasswordTooLong) {
			log.Error("hashing password", "err", err.Error())
		}
		return err
	}
	if err := a.users.ResetPassword(ctx, hashToken(token), hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("reset token not stored or expired", "user_id", claims.UserID)
			return ErrInvalidResetToken
		}
		log.Error(err.Error())
		return err
	}
	log.Info("password reset", "user_id", claims.UserID)
	return nil
}
