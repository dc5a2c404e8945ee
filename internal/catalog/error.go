package catalog

import "errors"

var (
	// Vendors
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrInvalidVendorID = errors.New("invalid vendor id")

	// Menu
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrInvalidMenuItemID = errors.New("invalid menu item id")
)
