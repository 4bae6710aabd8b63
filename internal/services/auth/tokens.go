package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"kutuphanem/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposePasswordReset = "password_reset"
	ResetTokenTTL        = time.Hour
)

type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

func (a *AuthService) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthService) parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return &claims, nil
}

// NewToken issues an access token for u.
func (a *AuthService) NewToken(u *models.User) (string, error) {
	return a.sign(Claims{UserID: u.ID, Username: u.Username, Email: u.Email}, a.tokenTTL)
}

// ParseToken verifies an access token and returns the user its claims
// describe. Reset tokens are not accepted.
func (a *AuthService) ParseToken(token string) (*models.User, error) {
	claims, err := a.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return &models.User{ID: claims.UserID, Username: claims.Username, Email: claims.Email}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
