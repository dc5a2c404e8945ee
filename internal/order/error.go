package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGatewayTimeout  = errors.New("gateway call timed out")
	ErrGatewayCanceled = errors.New("request canceled")
)

// failure is a step exit that ends the attempt.
type failure struct {
	kind    Kind
	message string
	missing []string
	err     error
}

func (f *failure) outcome() Outcome {
	return Outcome{
		Success: false,
		Kind:    f.kind,
		Message: f.message,
		Missing: f.missing,
	}
}

func fail(kind Kind, message string) *failure {
	return &failure{kind: kind, message: message}
}

func vendorNotFound(vendorID string) *failure {
	return fail(KindVendorNotFound, fmt.Sprintf("Vendor not found (ID: %s). Please contact support.", vendorID))
}

func vendorInactive(v Vendor) *failure {
	name := v.BusinessName
	if name == "" {
		name = v.ID
	}
	return fail(KindVendorNotFound, fmt.Sprintf("Vendor %s is not accepting orders right now.", name))
}

func profileIncomplete(missing []string) *failure {
	f := fail(KindProfileIncomplete,
		"Please complete your profile before ordering. Missing: "+strings.Join(missing, ", "))
	f.missing = missing
	return f
}

// gatewayFailure keeps the backend message verbatim, except for timeouts
// which name the step that stalled.
func gatewayFailure(state State, err error) *failure {
	if errors.Is(err, ErrGatewayTimeout) {
		f := fail(KindTimeout, fmt.Sprintf("Request timed out while %s. Please try again.", describe(state)))
		f.err = err
		return f
	}

	f := fail(KindGatewayError, err.Error())
	f.err = err
	return f
}

func describe(s State) string {
	switch s {
	case StateResolvingVendor:
		return "checking the vendor"
	case StateResolvingProfile:
		return "loading your profile"
	case StateSubmitting:
		return "submitting the order"
	default:
		return s.String()
	}
}
