package delivery

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// DefaultCountry is applied when an address is created without a country.
const DefaultCountry = "Brasil"

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// PostalDetails are the human-readable parts of an address.
type PostalDetails struct {
	Street  string
	Number  string
	City    string
	State   string
	ZipCode string
	Country string
}

// AddressPatch carries the optional fields of a partial address update.
type AddressPatch struct {
	Street   *string
	Number   *string
	City     *string
	State    *string
	ZipCode  *string
	Country  *string
	Location *kernel.Location
}

// Address is a delivery destination owned by one user. Coordinates are
// optional, but an address without them cannot be routed.
type Address struct { //nolint:recvcheck //using for validation
	id       kernel.UUID
	userID   kernel.UserID
	details  PostalDetails
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewAddress(id kernel.UUID, userID kernel.UserID, details PostalDetails, location *kernel.Location) (*Address, error) {
	if strings.TrimSpace(details.Country) == "" {
		details.Country = DefaultCountry
	}
	return RestoreAddress(id, userID, details, location)
}

func RestoreAddress(id kernel.UUID, userID kernel.UserID, details PostalDetails, location *kernel.Location) (*Address, error) {
	a := &Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		validateDetails(details),
		validateLocation(location),
	); err != nil {
		return nil, err
	}

	a.id = id
	a.userID = userID
	a.details = details
	a.location = location
	return a, nil
}

func (a *Address) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) ID() kernel.UUID                   { return a.id }
func (a *Address) UserID() kernel.UserID             { return a.userID }
func (a *Address) Details() PostalDetails            { return a.details }
func (a *Address) Location() *kernel.Location        { return a.location }
func (a *Address) IsOwnedBy(user kernel.UserID) bool { return a.userID == user }

// HasCoordinates reports whether the address can be used as a route destination.
func (a *Address) HasCoordinates() bool {
	return a.location != nil
}

// Apply merges a partial update. The address is left untouched if the result
// would be invalid.
func (a *Address) Apply(patch AddressPatch) error {
	details := a.details
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&details.Street, patch.Street)
	assign(&details.Number, patch.Number)
	assign(&details.City, patch.City)
	assign(&details.State, patch.State)
	assign(&details.ZipCode, patch.ZipCode)
	assign(&details.Country, patch.Country)

	location := a.location
	if patch.Location != nil {
		location = patch.Location
	}

	if err := errors.Join(validateDetails(details), validateLocation(location)); err != nil {
		return err
	}

	a.details = details
	a.location = location
	return nil
}

func validateDetails(d PostalDetails) error {
	var err error
	for name, value := range map[string]string{
		"street":  d.Street,
		"number":  d.Number,
		"city":    d.City,
		"state":   d.State,
		"zipCode": d.ZipCode,
		"country": d.Country,
	} {
		if strings.TrimSpace(value) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(name))
		}
	}
	return err
}

func validateLocation(loc *kernel.Location) error {
	if loc == nil {
		return nil
	}
	return loc.Validate()
}
