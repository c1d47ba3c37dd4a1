package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"missing scheme", "abc.def.ghi", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"empty header", "", ""},
		{"scheme only", "Bearer", ""},
		{"extra whitespace", "Bearer   abc.def.ghi", "abc.def.ghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header))
		})
	}
}
