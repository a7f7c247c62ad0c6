package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	testCases := []struct {
		name        string
		category    string
		key         string
		contentType string
		expected    string
	}{
		{"explicit key keeps extension", CategoryCertificate, "42/abc.pdf", "application/pdf", "certificates/42/abc.pdf"},
		{"extension from content type", CategoryFont, "custom", "font/ttf", "fonts/custom.ttf"},
		{"slashes trimmed", "/templates/", "/t", "application/pdf", "templates/t.pdf"},
		{"unknown type has no extension", CategoryTemplate, "blob", "application/octet-stream", "templates/blob"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ObjectName(tc.category, tc.key, tc.contentType))
		})
	}
}

func TestObjectName_GeneratesUUID(t *testing.T) {
	first := ObjectName(CategoryTemplate, "", "application/pdf")
	second := ObjectName(CategoryTemplate, "", "application/pdf")

	assert.True(t, strings.HasPrefix(first, "templates/"))
	assert.True(t, strings.HasSuffix(first, ".pdf"))
	assert.NotEqual(t, first, second)
	// "templates/" + 36 char uuid + ".pdf"
	assert.Len(t, first, len("templates/")+36+len(".pdf"))
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, route, want string
	}{
		{"https://olymp.example", "api/certificate/download/abc", "https://olymp.example/api/certificate/download/abc"},
		{"https://olymp.example/", "/api/x", "https://olymp.example/api/x"},
		{"http://localhost:8000//", "//a", "http://localhost:8000/a"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinURL(tt.base, tt.route))
		})
	}
}
