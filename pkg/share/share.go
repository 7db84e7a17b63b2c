// Package share builds shareable links to team pages.
package share

import (
	"net/http"
	"net/url"
	"strings"
)

// jsUnreserved are the characters that url.QueryEscape escapes but
// ECMAScript's encodeURIComponent leaves alone.
var jsUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Builder builds team URLs rooted at Origin.
type Builder struct {
	// Origin is the scheme and host of the dashboard, e.g. "https://courtmap.example".
	Origin string
}

// NewBuilder creates a builder for origin.
func NewBuilder(origin string) *Builder {
	return &Builder{Origin: origin}
}

// TeamURL returns <origin>/team/<encoded name>.
func (b *Builder) TeamURL(name string) string {
	return strings.TrimRight(b.Origin, "/") + "/team/" + EncodeURIComponent(name)
}

// EncodeURIComponent percent-encodes s the way browsers encode a single URI
// component: everything except A-Z a-z 0-9 and -_.!~*'() is escaped as UTF-8
// octets.
func EncodeURIComponent(s string) string {
	return jsUnreserved.Replace(url.QueryEscape(s))
}

// OriginFromRequest derives the origin a client used to reach the server.
// X-Forwarded-Proto and X-Forwarded-Host are honored when present.
func OriginFromRequest(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}

	return scheme + "://" + host
}
