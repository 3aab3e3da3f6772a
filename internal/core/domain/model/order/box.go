package order

import (
	"errors"
	"fmt"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrBoxIsNotConstructed is returned when attempting to use an improperly
// initialized Box. Boxes must be created via NewBox or RestoreBox.
var ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox or RestoreBox constructor")

// Box is a child entity of the Order aggregate representing one physical
// parcel. Its cubic-meter volume is derived from the dimensions and is
// recomputed synchronously whenever the dimensions change, so the cached
// value can never be stale.
type Box struct {
	id         kernel.UUID
	labelCode  string
	dimensions kernel.Dimensions
	weightKg   float64
	cbm        float64
	guard      guard.ConstructorGuard
}

// NewBox creates a Box with a unique label code, validated dimensions and a
// positive weight. The CBM is computed immediately from the dimensions.
func NewBox(id kernel.UUID, labelCode string, dimensions kernel.Dimensions, weightKg float64) (*Box, error) {
	box := &Box{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		box.setID(id),
		box.setLabelCode(labelCode),
		box.setWeight(weightKg),
	); err != nil {
		return nil, err
	}

	if err := box.SetDimensions(dimensions); err != nil {
		return nil, err
	}

	return box, nil
}

// RestoreBox reconstructs a Box from persistent storage.
func RestoreBox(
	id kernel.UUID,
	labelCode string,
	dimensions kernel.Dimensions,
	weightKg float64,
) (*Box, error) {
	return NewBox(id, labelCode, dimensions, weightKg)
}

// Validate checks if the Box was properly constructed.
func (b *Box) Validate() error {
	if b == nil {
		return ErrBoxIsNotConstructed
	}
	return b.guard.Validate(ErrBoxIsNotConstructed)
}

// ID returns the box's unique identifier.
func (b *Box) ID() kernel.UUID {
	return b.id
}

// LabelCode returns the physical label code attached to the box.
func (b *Box) LabelCode() string {
	return b.labelCode
}

// Dimensions returns the box dimensions in centimeters.
func (b *Box) Dimensions() kernel.Dimensions {
	return b.dimensions
}

// WeightKg returns the box weight in kilograms.
func (b *Box) WeightKg() float64 {
	return b.weightKg
}

// CBM returns the cached cubic-meter volume derived from the dimensions.
func (b *Box) CBM() float64 {
	return b.cbm
}

// SetDimensions replaces the box dimensions and recomputes the CBM.
func (b *Box) SetDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}

	b.dimensions = dimensions
	b.cbm = dimensions.CBM()
	return nil
}

func (b *Box) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Box) setLabelCode(labelCode string) error {
	if labelCode == "" {
		return errs.NewValueIsRequiredError("labelCode")
	}
	b.labelCode = labelCode
	return nil
}

func (b *Box) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg", fmt.Errorf("%g is not greater than 0", weightKg))
	}
	b.weightKg = weightKg
	return nil
}
