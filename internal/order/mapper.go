package order

import (
	"encoding/json"
	"fmt"

	"foodcourt-be/internal/gateway"
)

const (
	tableVendors  = "vendors"
	tableProfiles = "profiles"
	tableOrders   = "orders"
)

func vendorFromRecord(rec gateway.Record) Vendor {
	return Vendor{
		ID:           rec.String("id"),
		BusinessName: rec.String("business_name"),
		Organization: rec.String("organization"),
		Status:       rec.String("status"),
	}
}

func profileFromRecord(rec gateway.Record) Profile {
	return Profile{
		ID:              rec.String("id"),
		FullName:        rec.String("full_name"),
		Phone:           rec.String("phone"),
		DeliveryAddress: rec.String("delivery_address"),
		DeliveryNotes:   rec.String("delivery_notes"),
	}
}

// orderToRecord serializes the line items as a JSON array in the items column.
func orderToRecord(o *Order) (gateway.Record, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize order items: %w", err)
	}

	return gateway.Record{
		"id":               o.ID,
		"customer_id":      o.CustomerID,
		"vendor_id":        o.VendorID,
		"items":            string(items),
		"total_price":      o.TotalPrice,
		"status":           string(o.Status),
		"customer_name":    o.CustomerName,
		"customer_phone":   o.CustomerPhone,
		"delivery_address": o.DeliveryAddress,
		"delivery_notes":   o.DeliveryNotes,
		"created_at":       o.CreatedAt,
	}, nil
}
