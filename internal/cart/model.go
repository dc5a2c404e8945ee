package cart

import "github.com/shopspring/decimal"

// Item is a menu item as seen at add time. Its fields are copied into the
// line item and never refreshed from the catalog afterwards.
type Item struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"price"`
	VendorID   string          `json:"vendor_id"`
	VendorName string          `json:"vendor_name"`
	OrgName    string          `json:"org_name"`
}

type LineItem struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal is UnitPrice * Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
