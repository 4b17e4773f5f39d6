package assets

import (
	"net/http"
	"strings"
)

// Base identifies the externally reachable origin of a request.
type Base struct {
	Scheme string
	Host   string
}

// RequestBase derives the externally visible scheme and host, preferring
// reverse-proxy forwarded headers over the direct connection.
func RequestBase(r *http.Request) Base {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return Base{Scheme: scheme, Host: host}
}

// Resolver builds public URLs for one category's stored assets. It holds no
// state beyond the fixed path prefix and is safe to call for files that do
// not exist; existence is checked separately.
type Resolver struct {
	prefix string
}

// NewResolver combines the configured public path with the category name into
// the fixed URL prefix, e.g. ("/backend-assets", "news") -> "/backend-assets/news".
func NewResolver(publicPath, category string) Resolver {
	prefix := "/" + strings.Trim(publicPath, "/") + "/" + strings.Trim(category, "/")
	return Resolver{prefix: prefix}
}

// Resolve returns the absolute URL for filename. An empty filename yields the
// category base path with a trailing slash, which clients use to resolve
// relative names locally.
func (r Resolver) Resolve(base Base, filename string) string {
	return collapseSlashes(base.Scheme + "://" + base.Host + r.prefix + "/" + filename)
}

// collapseSlashes squeezes duplicate slashes produced by concatenation while
// leaving the scheme separator intact.
func collapseSlashes(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return squeezeSlashes(u)
	}
	return u[:i+3] + squeezeSlashes(u[i+3:])
}

func squeezeSlashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev byte
	for i := 0; i < len(s); i++ {
		if s[i] == '/' && prev == '/' {
			continue
		}
		b.WriteByte(s[i])
		prev = s[i]
	}
	return b.String()
}
