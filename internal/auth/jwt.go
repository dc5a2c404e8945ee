package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens. The subject claim
// carries the user id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for s. cmd/token uses it to mint tokens for local use.
func (t *TokenIssuer) Issue(s Session) (string, error) {
	if s.UserID == "" {
		return "", ErrNoSession
	}

	now := time.Now()
	claims := Claims{
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenStr string) (Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return t.secret, nil
		},
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{UserID: claims.Subject, Email: claims.Email}, nil
}
