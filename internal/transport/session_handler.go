package transport

import (
	"net/http"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/utils"

	"go.uber.org/zap"
)

type SessionHandler struct {
	carts *cart.Registry
}

func NewSessionHandler(carts *cart.Registry) *SessionHandler {
	return &SessionHandler{carts: carts}
}

// Logout discards the session cart and expires the access token cookie.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := auth.CurrentSession(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	h.carts.Drop(session.UserID)
	auth.ExpireAccessToken(w)

	logger.For(r.Context(), "handler", "Logout").Info("session ended", zap.String("user_id", session.UserID))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
