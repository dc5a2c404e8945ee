package middleware

import (
	"net/http"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/utils"

	"go.uber.org/zap"
)

// TokenParser turns an access token into a session.
type TokenParser interface {
	Parse(token string) (auth.Session, error)
}

// AuthMiddleware attaches the session behind a valid access token. Requests
// without a token pass through anonymously; a token that fails to verify is
// rejected.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

// RequireSession rejects anonymous requests.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.CurrentSession(r.Context()); err != nil {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
