package kernel

import (
	"errors"
	"fmt"

	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

const (
	// DimensionMinCm is the exclusive lower bound for a box side, in centimeters.
	DimensionMinCm float64 = 0
	// DimensionMaxCm is the inclusive upper bound for a box side, in centimeters.
	DimensionMaxCm float64 = 1000

	// CBMPrecision is the number of decimal places kept when converting
	// centimeter dimensions to cubic meters.
	CBMPrecision = 6

	cubicCmPerCubicMeter float64 = 1_000_000
)

// ErrDimensionsAreNotConstructed is returned when attempting to use an improperly
// initialized Dimensions value. Dimensions must be created via NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions represents the physical size of a box in centimeters.
// It is an immutable value object; the zero value is invalid and fails
// validation. The volume in cubic meters (CBM) derived from Dimensions is the
// basis for billing and capacity decisions.
//
// Example:
//
//	dims, err := kernel.NewDimensions(50, 40, 30)
//	if err != nil {
//	    // handle validation error
//	}
//	cbm := dims.CBM() // 0.06
type Dimensions struct { //nolint:recvcheck //using for validation
	widthCm  float64
	heightCm float64
	depthCm  float64
	guard    guard.ConstructorGuard
}

// NewDimensions creates a Dimensions value with the given sides in centimeters.
// Each side must be strictly positive and no larger than DimensionMaxCm.
func NewDimensions(widthCm, heightCm, depthCm float64) (Dimensions, error) {
	d := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setWidth(widthCm),
		d.setHeight(heightCm),
		d.setDepth(depthCm),
	); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

// Validate checks if the Dimensions value was properly constructed.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// WidthCm returns the width in centimeters.
func (d Dimensions) WidthCm() float64 {
	return d.widthCm
}

// HeightCm returns the height in centimeters.
func (d Dimensions) HeightCm() float64 {
	return d.heightCm
}

// DepthCm returns the depth in centimeters.
func (d Dimensions) DepthCm() float64 {
	return d.depthCm
}

// CBM returns the volume in cubic meters, rounded half-up to CBMPrecision
// decimal places. The conversion is width*height*depth / 1,000,000.
func (d Dimensions) CBM() float64 {
	return RoundHalfUp(d.widthCm*d.heightCm*d.depthCm/cubicCmPerCubicMeter, CBMPrecision)
}

// String returns a human-readable representation in the format "WxHxD cm".
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g cm", d.widthCm, d.heightCm, d.depthCm)
}

// IsEqual compares two Dimensions values side by side.
// Both values must be properly constructed for the comparison to succeed.
func (d Dimensions) IsEqual(other Dimensions) (bool, error) {
	if err := errors.Join(d.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return d.widthCm == other.widthCm &&
		d.heightCm == other.heightCm &&
		d.depthCm == other.depthCm, nil
}

// setWidth sets the width with validation.
// Note: private setters use pointer receivers to enable self-encapsulated
// validation during object construction, while all other methods use value
// receivers.
func (d *Dimensions) setWidth(widthCm float64) error {
	if widthCm <= DimensionMinCm || widthCm > DimensionMaxCm {
		return errs.NewValueIsOutOfRangeError("widthCm", widthCm, DimensionMinCm, DimensionMaxCm)
	}

	d.widthCm = widthCm
	return nil
}

// setHeight sets the height with validation.
func (d *Dimensions) setHeight(heightCm float64) error {
	if heightCm <= DimensionMinCm || heightCm > DimensionMaxCm {
		return errs.NewValueIsOutOfRangeError("heightCm", heightCm, DimensionMinCm, DimensionMaxCm)
	}

	d.heightCm = heightCm
	return nil
}

// setDepth sets the depth with validation.
func (d *Dimensions) setDepth(depthCm float64) error {
	if depthCm <= DimensionMinCm || depthCm > DimensionMaxCm {
		return errs.NewValueIsOutOfRangeError("depthCm", depthCm, DimensionMinCm, DimensionMaxCm)
	}

	d.depthCm = depthCm
	return nil
}
