package order

import (
	"errors"

	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrRecipientIsNotConstructed is returned when attempting to use an improperly
// initialized Recipient. Recipients must be created via NewRecipient.
var ErrRecipientIsNotConstructed = errs.NewValueIsRequiredError(
	"recipient must be created via NewRecipient constructor")

// Recipient is an immutable value object holding the delivery recipient block
// of an order: who receives the parcel and where.
type Recipient struct { //nolint:recvcheck //using for validation
	name       string
	phone      string
	address    string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

// NewRecipient creates a validated Recipient. Name, address and country are
// required; phone and postal code are optional.
func NewRecipient(name, phone, address, postalCode, country string) (Recipient, error) {
	r := Recipient{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setName(name),
		r.setAddress(address),
		r.setCountry(country),
	); err != nil {
		return Recipient{}, err
	}

	r.phone = phone
	r.postalCode = postalCode
	return r, nil
}

// Validate checks if the Recipient was properly constructed.
func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// Name returns the recipient's full name.
func (r Recipient) Name() string {
	return r.name
}

// Phone returns the recipient's contact phone number, possibly empty.
func (r Recipient) Phone() string {
	return r.phone
}

// Address returns the delivery street address.
func (r Recipient) Address() string {
	return r.address
}

// PostalCode returns the delivery postal code, possibly empty.
func (r Recipient) PostalCode() string {
	return r.postalCode
}

// Country returns the destination country code.
func (r Recipient) Country() string {
	return r.country
}

func (r *Recipient) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	r.name = name
	return nil
}

func (r *Recipient) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("recipientAddress")
	}
	r.address = address
	return nil
}

func (r *Recipient) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	r.country = country
	return nil
}
