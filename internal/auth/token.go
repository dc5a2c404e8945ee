package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

// ExtractAccessToken reads the access token from the cookie, falling back to
// a Bearer Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// ExpireAccessToken tells the client to drop the access token cookie.
func ExpireAccessToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
