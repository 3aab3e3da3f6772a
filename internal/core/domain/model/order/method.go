package order

import (
	"fmt"

	"lms/internal/pkg/errs"
)

// Method represents the shipping method for an order.
type Method int

const (
	// MethodUnknown represents an invalid or undefined shipping method.
	MethodUnknown Method = iota

	// Sea is the default shipping method for cross-border parcels.
	Sea

	// Air is the expedited method, forced whenever the order volume exceeds
	// the sea-freight threshold.
	Air
)

// MethodFromString parses a shipping method from its canonical name.
func MethodFromString(s string) (Method, error) {
	switch s {
	case "SEA":
		return Sea, nil
	case "AIR":
		return Air, nil
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shippingMethod", fmt.Errorf("%q is not a known shipping method", s))
}

// Validate checks if the Method value is valid.
func (m Method) Validate() error {
	if m != Sea && m != Air {
		return errs.NewValueIsInvalidErrorWithCause(
			"shippingMethod", fmt.Errorf("%d is not a valid shipping method", m))
	}
	return nil
}

// String returns the canonical uppercase name of the method.
func (m Method) String() string {
	switch m {
	case Sea:
		return "SEA"
	case Air:
		return "AIR"
	default:
		return "UNKNOWN"
	}
}
