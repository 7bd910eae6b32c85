package order

import (
	"errors"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order. Unit price and pizza name are snapshots taken
// when the order is created.
type Item struct { //nolint:recvcheck //using for validation
	pizzaID   int64
	pizzaName string
	quantity  int
	unitPrice decimal.Decimal

	guard guard.ConstructorGuard
}

func NewItem(pizzaID int64, pizzaName string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setPizzaID(pizzaID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}
	item.pizzaName = pizzaName

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) PizzaID() int64             { return i.pizzaID }
func (i Item) PizzaName() string          { return i.pizzaName }
func (i Item) Quantity() int              { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }

// Subtotal is unit price × quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setPizzaID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("pizza id")
	}
	i.pizzaID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("quantity must be greater than 0"))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", errors.New("price cannot be negative"))
	}
	i.unitPrice = price
	return nil
}
