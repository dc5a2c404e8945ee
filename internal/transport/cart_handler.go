package transport

import (
	"errors"
	"net/http"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/catalog"
	"foodcourt-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	catalog catalog.Service
	carts   *cart.Registry
}

func NewCartHandler(svc catalog.Service, carts *cart.Registry) *CartHandler {
	return &CartHandler{catalog: svc, carts: carts}
}

type AddItemRequestDTO struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type CartResponse struct {
	Items     []cart.LineItem `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func newCartResponse(store *cart.Store) CartResponse {
	items := store.Items()
	count := 0
	for _, li := range items {
		count += li.Quantity
	}
	return CartResponse{
		Items:     items,
		Total:     cart.Total(items),
		ItemCount: count,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := sessionCart(h.carts, w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(store))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := sessionCart(h.carts, w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.catalog.GetMenuItem(r.Context(), req.MenuItemID)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	if err := store.Add(item.CartItem(), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) || errors.Is(err, cart.ErrInvalidItem) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, newCartResponse(store))
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	store, ok := sessionCart(h.carts, w, r)
	if !ok {
		return
	}
	store.IncrementQuantity(chi.URLParam(r, "itemID"))
	utils.WriteJSON(w, http.StatusOK, newCartResponse(store))
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	store, ok := sessionCart(h.carts, w, r)
	if !ok {
		return
	}
	store.DecrementOrRemove(chi.URLParam(r, "itemID"))
	utils.WriteJSON(w, http.StatusOK, newCartResponse(store))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := sessionCart(h.carts, w, r)
	if !ok {
		return
	}
	store.Clear()
	utils.WriteJSON(w, http.StatusOK, newCartResponse(store))
}

// sessionCart writes a 401 and returns false when the request has no session.
func sessionCart(carts *cart.Registry, w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	session, err := auth.CurrentSession(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}

	store, err := carts.Get(session.UserID)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		return nil, false
	}
	return store, true
}
