package billing

import (
	"errors"
	"fmt"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
)

// TaxRate is the VAT rate applied to the fee subtotal.
const TaxRate = 0.07

// Fees holds the configurable fee components of an invoice. All amounts are
// in the invoice currency and must be non-negative; zero means the component
// does not apply.
type Fees struct {
	Shipping      float64
	LocalDelivery float64
	Repacking     float64
	Handling      float64
	Insurance     float64
	Customs       float64
}

// Validate checks that every fee component is non-negative.
func (f Fees) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%g is negative", v))
		}
		return nil
	}

	return errors.Join(
		check("shippingFee", f.Shipping),
		check("localDeliveryFee", f.LocalDelivery),
		check("repackingFee", f.Repacking),
		check("handlingFee", f.Handling),
		check("insuranceFee", f.Insurance),
		check("customsFee", f.Customs),
	)
}

// Subtotal returns the sum of all fee components, rounded to 2 decimals.
func (f Fees) Subtotal() float64 {
	return kernel.RoundHalfUp(
		f.Shipping+f.LocalDelivery+f.Repacking+f.Handling+f.Insurance+f.Customs, 2)
}
