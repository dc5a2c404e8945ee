package transport

import (
	"net/http"

	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/catalog"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/middleware"
	"foodcourt-be/internal/order"
	"foodcourt-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Catalog    catalog.Service
	Carts      *cart.Registry
	Orders     order.Service
	Tokens     middleware.TokenParser
	Limiter    *middleware.RateLimiter
	CORSOrigin string
}

func NewRouter(d Deps) http.Handler {
	catalogHandler := NewCatalogHandler(d.Catalog)
	cartHandler := NewCartHandler(d.Catalog, d.Carts)
	checkoutHandler := NewCheckoutHandler(d.Carts, d.Orders)
	sessionHandler := NewSessionHandler(d.Carts)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(d.CORSOrigin))
	r.Use(middleware.AuthMiddleware(d.Tokens))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"checkout":     d.Orders.Stats(),
			"active_carts": d.Carts.Len(),
		})
	})

	r.Get("/organizations", catalogHandler.ListOrganizations)
	r.Get("/organizations/{org}/vendors", catalogHandler.ListVendors)
	r.Get("/vendors/{vendorID}/menu", catalogHandler.ListMenu)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/{itemID}/increment", cartHandler.Increment)
			r.Post("/items/{itemID}/decrement", cartHandler.Decrement)
		})

		r.Post("/checkout", checkoutHandler.Checkout)
		r.Post("/logout", sessionHandler.Logout)
	})

	return r
}
