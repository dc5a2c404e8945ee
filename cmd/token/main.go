package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/config"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/order"

	"go.uber.org/zap"
)

// token mints a session token signed with JWT_SECRET for local use against
// the cart and checkout routes.
func main() {
	userID := flag.String("user", "", "user id to put in the subject claim")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := mint(os.Stdout, cfg.JWTSecret, *ttl, auth.Session{UserID: *userID, Email: *email}); err != nil {
		logger.L().Fatal("failed to mint token", zap.Error(err))
	}
}

func mint(out io.Writer, secret string, ttl time.Duration, s auth.Session) error {
	if !order.ValidCustomerID(s.UserID) {
		return fmt.Errorf("user id %q is not a uuid", s.UserID)
	}

	issuer, err := auth.NewTokenIssuer(secret, ttl)
	if err != nil {
		return err
	}

	token, err := issuer.Issue(s)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
