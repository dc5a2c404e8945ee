package order

import (
	"strings"
	"time"

	"foodcourt-be/internal/cart"

	"github.com/shopspring/decimal"
)

type Status string

const StatusPending Status = "pending"

const VendorStatusApproved = "approved"

type Vendor struct {
	ID           string
	BusinessName string
	Organization string
	Status       string
}

// Active reports whether the vendor currently accepts orders.
func (v Vendor) Active() bool {
	return strings.EqualFold(v.Status, VendorStatusApproved)
}

type Profile struct {
	ID              string
	FullName        string
	Phone           string
	DeliveryAddress string
	DeliveryNotes   string
}

// MissingFields lists the human labels of required fields that are blank.
func (p Profile) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.FullName) == "" {
		missing = append(missing, "full name")
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(p.DeliveryAddress) == "" {
		missing = append(missing, "delivery address")
	}
	return missing
}

type Order struct {
	ID              string
	CustomerID      string
	VendorID        string
	Items           []cart.LineItem
	TotalPrice      decimal.Decimal
	Status          Status
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryNotes   string
	CreatedAt       time.Time
}
