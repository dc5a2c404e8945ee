package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodcourt-be/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS("http://localhost:3000")(nextHandler)

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/checkout", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/organizations", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuth(t *testing.T) {
	issuer := newIssuer(t)

	t.Run("Missing Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := auth.SessionFrom(r.Context())
			assert.False(t, ok, "Context should not contain a session")
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/cart", nil)
		w := httptest.NewRecorder()

		AuthMiddleware(issuer)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		AuthMiddleware(issuer)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String())
	})

	t.Run("Valid Bearer Token", func(t *testing.T) {
		token, err := issuer.Issue(auth.Session{UserID: "user-1", Email: "ana@example.com"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := auth.CurrentSession(r.Context())
			assert.NoError(t, err)
			assert.Equal(t, "user-1", s.UserID)
			assert.Equal(t, "ana@example.com", s.Email)
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(issuer)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Valid Cookie Token", func(t *testing.T) {
		token, err := issuer.Issue(auth.Session{UserID: "user-2"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/cart", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
		w := httptest.NewRecorder()

		var got auth.Session
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = auth.SessionFrom(r.Context())
		})

		AuthMiddleware(issuer)(next).ServeHTTP(w, req)

		assert.Equal(t, "user-2", got.UserID)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		AuthMiddleware(issuer)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := auth.SessionFrom(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(issuer)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireSession(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireSession(ok).ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req = req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: "user-1"}))
		w := httptest.NewRecorder()

		RequireSession(ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier on checkout", func(t *testing.T) {
		handler := NewRateLimiter().Middleware(ok)

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.RemoteAddr = "10.0.0.1:5000"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		for _, code := range codes[:burstStrict] {
			assert.Equal(t, http.StatusOK, code)
		}
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Tiers have separate buckets", func(t *testing.T) {
		handler := NewRateLimiter().Middleware(ok)

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.RemoteAddr = "10.0.0.2:5000"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cleanup drops idle visitors", func(t *testing.T) {
		l := NewRateLimiter()
		now := time.Now()
		l.now = func() time.Time { return now }

		l.getVisitor("ip:1:general", limitGeneral, burstGeneral)
		now = now.Add(visitorIdleTimeout + time.Second)
		l.getVisitor("ip:2:general", limitGeneral, burstGeneral)

		assert.Equal(t, 1, l.Cleanup())
		assert.Len(t, l.visitors, 1)
	})
}

func TestIdentity(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.9:4431"
	assert.Equal(t, "ip:192.168.1.9", identity(req))

	req.Header.Set("X-Device-ID", "dev-7")
	assert.Equal(t, "device:dev-7", identity(req))

	req = req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: "u1"}))
	assert.Equal(t, "user:u1", identity(req))
}
