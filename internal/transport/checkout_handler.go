package transport

import (
	"net/http"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/order"
	"foodcourt-be/internal/utils"
)

type CheckoutHandler struct {
	carts  *cart.Registry
	orders order.Service
}

func NewCheckoutHandler(carts *cart.Registry, orders order.Service) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, orders: orders}
}

// Checkout places the session cart as an order. The body always carries the
// outcome, whatever the status code.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	store, ok := sessionCart(h.carts, w, r)
	if !ok {
		return
	}

	session, _ := auth.CurrentSession(r.Context())
	out := h.orders.PlaceOrder(r.Context(), store, session.UserID)

	utils.WriteJSON(w, statusFor(out), out)
}

func statusFor(out order.Outcome) int {
	if out.Success {
		return http.StatusOK
	}

	switch out.Kind {
	case order.KindInvalidIdentifier:
		return http.StatusBadRequest
	case order.KindVendorNotFound:
		return http.StatusNotFound
	case order.KindEmptyCart, order.KindMixedVendor, order.KindProfileMissing, order.KindProfileIncomplete:
		return http.StatusUnprocessableEntity
	case order.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
