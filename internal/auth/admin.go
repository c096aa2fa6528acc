package auth

import (
	"crypto/subtle"
	"net/http"
)

// AdminHeader carries the administrator secret on privileged requests.
const AdminHeader = "X-Admin-Password"

// IsAdmin reports whether the request carries the configured administrator
// secret. An unconfigured secret grants nobody admin; the comparison is
// constant time.
func IsAdmin(r *http.Request, secret string) bool {
	if secret == "" {
		return false
	}
	provided := r.Header.Get(AdminHeader)
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1
}

// SecretsMatch compares two shared secrets in constant time.
func SecretsMatch(provided, configured string) bool {
	return configured != "" &&
		subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) == 1
}
