package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"Username":        "username",
		"PasswordConfirm": "password_confirm",
		"AvatarURL":       "avatar_url",
		"HTTPServer":      "http_server",
		"ID":              "id",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelToSnake(in), in)
	}
}
