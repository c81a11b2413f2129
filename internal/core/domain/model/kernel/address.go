package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a delivery address. Orders keep their own copy taken at creation time,
// so later changes to the customer record never alter past orders.
type Address struct {
	street   string
	number   string
	district string
	city     string
	state    string
	zipCode  string

	guard guard.ConstructorGuard
}

// NewAddress requires street, city and zip code; number, district and state are optional.
func NewAddress(street, number, district, city, state, zipCode string) (Address, error) {
	a := Address{
		street:   strings.TrimSpace(street),
		number:   strings.TrimSpace(number),
		district: strings.TrimSpace(district),
		city:     strings.TrimSpace(city),
		state:    strings.TrimSpace(state),
		zipCode:  strings.TrimSpace(zipCode),
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if a.street == "" {
		errList = append(errList, errs.NewValueIsRequiredError("street"))
	}
	if a.city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	if a.zipCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("zip code"))
	}
	if err := errors.Join(errList...); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string   { return a.street }
func (a Address) Number() string   { return a.number }
func (a Address) District() string { return a.district }
func (a Address) City() string     { return a.city }
func (a Address) State() string    { return a.state }
func (a Address) ZipCode() string  { return a.zipCode }

// String joins the non-empty parts, e.g. "Main St, 10, Centre, Springfield, SP, 01000-000".
func (a Address) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.street, a.number, a.district, a.city, a.state, a.zipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
