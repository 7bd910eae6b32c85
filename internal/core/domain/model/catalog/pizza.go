// Package catalog holds the read-only view of the pizza menu used to price orders.
package catalog

import (
	"errors"
	"strings"

	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Pizza is a menu entry. The catalog is maintained elsewhere; this service
// only reads it.
type Pizza struct {
	id    int64
	name  string
	price decimal.Decimal
}

func RestorePizza(id int64, name string, price decimal.Decimal) (*Pizza, error) {
	var err error
	if id <= 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("pizza id"))
	}
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pizza name"))
	}
	if price.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("price", errors.New("price cannot be negative")))
	}
	if err != nil {
		return nil, err
	}
	return &Pizza{id: id, name: name, price: price}, nil
}

func (p *Pizza) ID() int64              { return p.id }
func (p *Pizza) Name() string           { return p.name }
func (p *Pizza) Price() decimal.Decimal { return p.price }
