package commands

import (
	"errors"

	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrConsolidateCommandIsNotConstructed = errors.New(
		"ConsolidateCommand must be created via NewConsolidateCommand constructor",
	)
)

// ConsolidateCommand represents a request to repack several stored units
// into a single mixbox with newly measured dimensions.
type ConsolidateCommand struct { //nolint:recvcheck //using for validation
	labelCodes []string
	widthCm    float64
	heightCm   float64
	depthCm    float64
	location   string
	note       string
	actor      string

	guard guard.ConstructorGuard
}

// NewConsolidateCommand creates a consolidation command. At least two
// source labels are required; the dimensions are those of the new mixbox,
// its weight is the sum of the consumed units.
func NewConsolidateCommand(
	labelCodes []string,
	widthCm, heightCm, depthCm float64,
	location string,
	note string,
	actor string,
) (ConsolidateCommand, error) {
	consolidateCommand := ConsolidateCommand{
		widthCm:  widthCm,
		heightCm: heightCm,
		depthCm:  depthCm,
		location: location,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		consolidateCommand.setLabelCodes(labelCodes),
		consolidateCommand.setActor(actor),
	); err != nil {
		return ConsolidateCommand{}, err
	}

	return consolidateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConsolidateCommandIsNotConstructed if validation fails.
func (c ConsolidateCommand) Validate() error {
	return c.guard.Validate(ErrConsolidateCommandIsNotConstructed)
}

// LabelCodes returns the labels of the units being consolidated.
func (c ConsolidateCommand) LabelCodes() []string {
	return c.labelCodes
}

// WidthCm returns the mixbox width in centimeters.
func (c ConsolidateCommand) WidthCm() float64 {
	return c.widthCm
}

// HeightCm returns the mixbox height in centimeters.
func (c ConsolidateCommand) HeightCm() float64 {
	return c.heightCm
}

// DepthCm returns the mixbox depth in centimeters.
func (c ConsolidateCommand) DepthCm() float64 {
	return c.depthCm
}

// Location returns the storage location of the new mixbox.
func (c ConsolidateCommand) Location() string {
	return c.location
}

// Note returns the operator's free-form note.
func (c ConsolidateCommand) Note() string {
	return c.note
}

// Actor returns the identity of the consolidating operator.
func (c ConsolidateCommand) Actor() string {
	return c.actor
}

func (c *ConsolidateCommand) setLabelCodes(labelCodes []string) error {
	if len(labelCodes) < 2 {
		return errs.NewValueIsInvalidErrorWithCause("labelCodes",
			errors.New("consolidation requires at least two units"))
	}

	seen := make(map[string]struct{}, len(labelCodes))
	for _, labelCode := range labelCodes {
		if labelCode == "" {
			return errs.NewValueIsRequiredError("labelCode")
		}
		if _, ok := seen[labelCode]; ok {
			return errs.NewDuplicateResourceError("labelCode", labelCode)
		}
		seen[labelCode] = struct{}{}
	}

	c.labelCodes = labelCodes
	return nil
}

func (c *ConsolidateCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
