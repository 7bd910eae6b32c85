package kernel

import (
	"strconv"

	"pizzeria/internal/pkg/errs"
)

// UserID identifies a customer. Users are owned by the external auth system;
// the service only stores and compares their ids.
type UserID int64

// UserIDFromString parses the subject claim of a bearer token.
func UserIDFromString(s string) (UserID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("user id", err)
	}
	id := UserID(v)
	if err = id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

func (u UserID) Validate() error {
	if u <= 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	return nil
}

func (u UserID) String() string {
	return strconv.FormatInt(int64(u), 10)
}
