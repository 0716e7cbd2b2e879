package server

import (
	"net/http"
	"regexp"
)

const (
	name = "arch-stack"

	// DefaultAPIVersion is used when the client does not negotiate one.
	DefaultAPIVersion = "v1"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var vendorMediaType = regexp.MustCompile(`application/vnd\.nvidia\.archstack\.(v[0-9]+)\+json`)

// negotiateAPIVersion picks the API version from the Accept header's
// vendor media type, falling back to the default for plain or malformed
// accepts.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(r.Header.Get("Accept"))
	if m == nil {
		return DefaultAPIVersion
	}
	if !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(v string) bool {
	return v == "v1"
}
