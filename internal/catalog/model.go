package catalog

import (
	"foodcourt-be/internal/cart"

	"github.com/shopspring/decimal"
)

// StatusApproved marks a vendor that is listed and accepts orders.
const StatusApproved = "approved"

type Vendor struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Organization string `json:"organization"`
	Status       string `json:"status"`
}

type MenuItem struct {
	ID           string          `json:"id"`
	VendorID     string          `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	OrgName      string          `json:"org_name"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

// CartItem copies the fields a cart line keeps for the lifetime of the cart.
func (m *MenuItem) CartItem() cart.Item {
	return cart.Item{
		ID:         m.ID,
		Name:       m.Name,
		UnitPrice:  m.Price,
		VendorID:   m.VendorID,
		VendorName: m.VendorName,
		OrgName:    m.OrgName,
	}
}
