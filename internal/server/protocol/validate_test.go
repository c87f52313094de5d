package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]any
		required []string
		want     string
	}{
		{
			"all present",
			map[string]any{"username": "alice", "password": "x", "email": "a@b.co"},
			[]string{"username", "password", "email"},
			"",
		},
		{
			"missing field",
			map[string]any{"username": "alice"},
			[]string{"username", "password"},
			"Missing required field: password",
		},
		{
			"blank field",
			map[string]any{"username": "alice", "password": "   "},
			[]string{"username", "password"},
			"Field cannot be empty: password",
		},
		{
			"nil field",
			map[string]any{"title": nil},
			[]string{"title"},
			"Field cannot be empty: title",
		},
		{
			"bad email",
			map[string]any{"email": "not-an-email"},
			[]string{"email"},
			"Invalid email format",
		},
		{
			"email without tld",
			map[string]any{"email": "user@host"},
			[]string{"email"},
			"Invalid email format",
		},
		{
			"short username",
			map[string]any{"username": "ab"},
			[]string{"username"},
			"Username must be at least 3 characters",
		},
		{
			"username with punctuation",
			map[string]any{"username": "al ice!"},
			[]string{"username"},
			"Username can only contain letters, numbers, and underscores",
		},
		{
			"optional keys validated when present",
			map[string]any{"title": "hi", "email": "bad"},
			[]string{"title"},
			"Invalid email format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateParams(tt.params, tt.required...))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean text stays", "Projector broken in room 101", "Projector broken in room 101"},
		{"keywords stripped", "DROP TABLE students", "TABLE students"},
		{"keywords case-insensitive", "please select my data", "please  my data"},
		{"comment markers stripped", "x -- comment /* y */", "x  comment  y"},
		{"quotes and semicolons stripped", `a'; "b" \c`, "a b c"},
		{"at signs stripped", "user@@host @x", "userhost x"},
		{"substring keywords survive", "updated the dropdown", "updated the dropdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}
