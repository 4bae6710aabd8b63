package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type addForm struct {
	ListType    string `validate:"listtype"`
	ContentType string `validate:"contenttype"`
	Note        string `validate:"notblank" errorMsg:"Say something"`
}

func TestValidateStruct(t *testing.T) {
	v := New()

	errs := ValidateStruct(v, &registerForm{
		Username:        "ab",
		Email:           "not-an-email",
		Password:        "secret",
		PasswordConfirm: "secreT",
	})
	assert.Equal(t, map[string]string{
		"username":        "The minimum value is 3",
		"email":           "Value must be a valid email address",
		"passwordConfirm": "Value should be equal to password",
	}, errs)

	assert.Nil(t, ValidateStruct(v, registerForm{
		Username: "ayse", Email: "ayse@example.com", Password: "secret", PasswordConfirm: "secret",
	}))
}

func TestCustomTags(t *testing.T) {
	v := New()
	errs := ValidateStruct(v, addForm{ListType: "favourites", ContentType: "music", Note: "  "})
	assert.Equal(t, map[string]string{
		"list_type":    "Value must be one of watched, to_watch, read, to_read",
		"content_type": "Value must be movie or book",
		"note":         "Say something",
	}, errs)

	assert.Nil(t, ValidateStruct(v, addForm{ListType: "to_read", ContentType: "book", Note: "x"}))
}

type passwordForm struct {
	Password string `json:"password" validate:"required,maxbytes=72"`
}

func TestMaxBytesCountsBytes(t *testing.T) {
	v := New()
	// 36 two-byte runes fit, 37 do not.
	assert.Nil(t, ValidateStruct(v, passwordForm{Password: strings.Repeat("ş", 36)}))
	assert.Equal(t, map[string]string{
		"password": "The maximum length is 72 bytes",
	}, ValidateStruct(v, passwordForm{Password: strings.Repeat("ş", 37)}))
	assert.NotNil(t, ValidateStruct(v, passwordForm{Password: strings.Repeat("a", 73)}))
}
