package order

// State is a step of one checkout attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateResolvingVendor
	StateResolvingProfile
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateResolvingVendor:
		return "resolving_vendor"
	case StateResolvingProfile:
		return "resolving_profile"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Kind classifies a failed checkout.
type Kind string

const (
	KindEmptyCart         Kind = "empty_cart"
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindMixedVendor       Kind = "mixed_vendor"
	KindVendorNotFound    Kind = "vendor_not_found"
	KindProfileMissing    Kind = "profile_missing"
	KindProfileIncomplete Kind = "profile_incomplete"
	KindGatewayError      Kind = "gateway_error"
	KindTimeout           Kind = "timeout"
)

// Outcome is the result of PlaceOrder. Failures never surface as Go errors.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	// Missing names blank profile fields for KindProfileIncomplete.
	Missing []string `json:"missing,omitempty"`
	// Shared reports that the outcome was delivered to several concurrent callers.
	Shared bool `json:"-"`
}

const MsgOrderPlaced = "Order placed successfully!"

const (
	MsgEmptyCart       = "Cart is empty"
	MsgInvalidID       = "Invalid user ID format. Please log out and log back in."
	MsgMixedVendor     = "All items must be from the same vendor"
	MsgProfileNotFound = "Profile not found. Please complete your profile before ordering."
)
