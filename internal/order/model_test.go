package order

import (
	"encoding/json"
	"testing"
	"time"

	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/gateway"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendor_Active(t *testing.T) {
	assert.True(t, Vendor{Status: "approved"}.Active())
	assert.True(t, Vendor{Status: "APPROVED"}.Active())
	assert.False(t, Vendor{Status: "pending"}.Active())
	assert.False(t, Vendor{}.Active())
}

func TestProfile_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    []string
	}{
		{"Complete", Profile{FullName: "Ana", Phone: "1", DeliveryAddress: "Dorm 4"}, nil},
		{"NotesAreOptional", Profile{FullName: "Ana", Phone: "1", DeliveryAddress: "Dorm 4", DeliveryNotes: ""}, nil},
		{"BlankAddress", Profile{FullName: "Ana", Phone: "1", DeliveryAddress: "  "}, []string{"delivery address"}},
		{"Empty", Profile{}, []string{"full name", "phone", "delivery address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.MissingFields())
		})
	}
}

func TestProfileFromRecord(t *testing.T) {
	p := profileFromRecord(gateway.Record{
		"id":               "u1",
		"full_name":        "Ana Reyes",
		"phone":            []byte("0917"),
		"delivery_address": "Dorm 4",
		"delivery_notes":   nil,
	})

	assert.Equal(t, Profile{ID: "u1", FullName: "Ana Reyes", Phone: "0917", DeliveryAddress: "Dorm 4"}, p)
}

func TestVendorFromRecord(t *testing.T) {
	v := vendorFromRecord(gateway.Record{"id": "v1", "business_name": "Campus Grill", "organization": "North", "status": "approved"})

	assert.Equal(t, Vendor{ID: "v1", BusinessName: "Campus Grill", Organization: "North", Status: "approved"}, v)
}

func TestOrderToRecord(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := &Order{
		ID:         "o1",
		CustomerID: "c1",
		VendorID:   "v1",
		Items: []cart.LineItem{
			{Item: cart.Item{ID: "a", Name: "Adobo", UnitPrice: decimal.RequireFromString("99.50"), VendorID: "v1"}, Quantity: 2},
		},
		TotalPrice: decimal.RequireFromString("199.00"),
		Status:     StatusPending,
		CreatedAt:  created,
	}

	rec, err := orderToRecord(o)
	require.NoError(t, err)

	assert.Equal(t, "o1", rec["id"])
	assert.Equal(t, "pending", rec["status"])
	assert.Equal(t, created, rec["created_at"])
	assert.True(t, rec["total_price"].(decimal.Decimal).Equal(decimal.NewFromInt(199)))

	var items []cart.LineItem
	require.NoError(t, json.Unmarshal([]byte(rec["items"].(string)), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("99.5")))
}
