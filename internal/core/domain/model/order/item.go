package order

import (
	"errors"
	"fmt"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when attempting to use an improperly
// initialized Item. Items must be created via NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is a child entity of the Order aggregate describing declared goods.
// Its declared value contributes to the total used by the compliance rules.
type Item struct {
	id            kernel.UUID
	description   string
	quantity      int
	unitValue     float64
	currency      string
	hsCode        string
	guard         guard.ConstructorGuard
}

// NewItem creates an Item with a description, positive quantity and a
// non-negative declared unit value. The HS customs code is optional.
func NewItem(
	id kernel.UUID,
	description string,
	quantity int,
	unitValue float64,
	currency string,
	hsCode string,
) (*Item, error) {
	item := &Item{
		hsCode: hsCode,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setDescription(description),
		item.setQuantity(quantity),
		item.setUnitValue(unitValue),
		item.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistent storage.
func RestoreItem(
	id kernel.UUID,
	description string,
	quantity int,
	unitValue float64,
	currency string,
	hsCode string,
) (*Item, error) {
	return NewItem(id, description, quantity, unitValue, currency, hsCode)
}

// Validate checks if the Item was properly constructed.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Description returns the declared goods description.
func (i *Item) Description() string {
	return i.description
}

// Quantity returns the declared quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitValue returns the declared value of a single unit.
func (i *Item) UnitValue() float64 {
	return i.unitValue
}

// Currency returns the currency code of the declared value.
func (i *Item) Currency() string {
	return i.currency
}

// HSCode returns the customs classification code, possibly empty.
func (i *Item) HSCode() string {
	return i.hsCode
}

// TotalValue returns quantity * unit value, rounded to 2 decimal places.
func (i *Item) TotalValue() float64 {
	return kernel.RoundHalfUp(float64(i.quantity)*i.unitValue, 2)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	i.description = description
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitValue(unitValue float64) error {
	if unitValue < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitValue", fmt.Errorf("%g is negative", unitValue))
	}
	i.unitValue = unitValue
	return nil
}

func (i *Item) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	i.currency = currency
	return nil
}
