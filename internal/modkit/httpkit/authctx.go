package httpkit

import (
	"net/http"
	"strings"

	perrs "faqrelay/internal/platform/errors"
	pnet "faqrelay/internal/platform/net"
)

// Caller returns the authenticated caller id from the request context
func Caller(r *http.Request) (string, error) {
	cid := pnet.CallerID(r.Context())
	if cid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return cid, nil
}

// MustCaller returns the authenticated caller id or panics
// only use on routes protected by the auth middleware
func MustCaller(r *http.Request) string {
	cid, err := Caller(r)
	if err != nil {
		panic(err)
	}
	return cid
}

// Bearer returns the raw bearer token from the Authorization header
func Bearer(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// MustBearer returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustBearer(r *http.Request) string {
	raw, err := Bearer(r)
	if err != nil {
		panic(err)
	}
	return raw
}
