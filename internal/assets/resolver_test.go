package assets

import (
	"net/http/httptest"
	"testing"
)

func TestRequestBase_ForwardedHeadersTakePrecedence(t *testing.T) {
	req := httptest.NewRequest("GET", "http://internal:5000/api/news", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "desa.example.id")

	base := RequestBase(req)
	if base.Scheme != "https" {
		t.Errorf("expected scheme https, got %q", base.Scheme)
	}
	if base.Host != "desa.example.id" {
		t.Errorf("expected host desa.example.id, got %q", base.Host)
	}
}

func TestRequestBase_FallsBackToDirectConnection(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost:5000/api/news", nil)

	base := RequestBase(req)
	if base.Scheme != "http" {
		t.Errorf("expected scheme http, got %q", base.Scheme)
	}
	if base.Host != "localhost:5000" {
		t.Errorf("expected host localhost:5000, got %q", base.Host)
	}
}

func TestResolver_Resolve(t *testing.T) {
	base := Base{Scheme: "https", Host: "desa.example.id"}

	testcases := []struct {
		name       string
		publicPath string
		category   string
		filename   string
		expected   string
	}{
		{
			name:       "plain filename",
			publicPath: "/backend-assets",
			category:   "news",
			filename:   "foto.jpg",
			expected:   "https://desa.example.id/backend-assets/news/foto.jpg",
		},
		{
			name:       "empty filename yields base path",
			publicPath: "/backend-assets",
			category:   "gallery",
			filename:   "",
			expected:   "https://desa.example.id/backend-assets/gallery/",
		},
		{
			name:       "sloppy prefix slashes are collapsed",
			publicPath: "/backend-assets/",
			category:   "/events/",
			filename:   "a.png",
			expected:   "https://desa.example.id/backend-assets/events/a.png",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := NewResolver(tc.publicPath, tc.category)
			result := resolver.Resolve(base, tc.filename)
			if result != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestResolver_CollapsesHostTrailingSlash(t *testing.T) {
	resolver := NewResolver("/backend-assets", "news")
	result := resolver.Resolve(Base{Scheme: "http", Host: "example.com/"}, "x.jpg")
	expected := "http://example.com/backend-assets/news/x.jpg"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}
