package transport

import (
	"errors"
	"net/http"

	"foodcourt-be/internal/catalog"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

func (h *CatalogHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.catalog.ListOrganizations(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

func (h *CatalogHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	org := chi.URLParam(r, "org")
	search := r.URL.Query().Get("search")

	vendors, err := h.catalog.ListVendors(r.Context(), org, search)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
}

func (h *CatalogHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListMenu(r.Context(), chi.URLParam(r, "vendorID"))
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidVendorID), errors.Is(err, catalog.ErrInvalidMenuItemID):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrVendorNotFound), errors.Is(err, catalog.ErrMenuItemNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		logger.FromCtx(r.Context()).Error("catalog request failed", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
