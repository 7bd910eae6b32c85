package services

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

// ErrPizzasNotFound is returned when a requested pizza is absent from the catalog.
var ErrPizzasNotFound = errs.NewObjectNotFoundError("pizzas", "one or more pizzas not found")

// LineRequest is a requested pizza and quantity before pricing.
type LineRequest struct {
	PizzaID  int64
	Quantity int
}

type OrderPricer struct{}

func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Price builds the order items using catalog prices. Every requested id must
// be present in pizzas; a single miss fails the whole order.
func (OrderPricer) Price(lines []LineRequest, pizzas []*catalog.Pizza) ([]order.Item, error) {
	if len(lines) == 0 {
		return nil, order.ErrOrderHasNoItems
	}

	byID := make(map[int64]*catalog.Pizza, len(pizzas))
	for _, p := range pizzas {
		byID[p.ID()] = p
	}

	var missing []int64
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		pizza, ok := byID[line.PizzaID]
		if !ok {
			missing = append(missing, line.PizzaID)
			continue
		}

		item, err := order.NewItem(pizza.ID(), pizza.Name(), line.Quantity, pizza.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(missing) > 0 {
		return nil, errs.NewObjectNotFoundErrorWithCause("pizzas", ErrPizzasNotFound.ID,
			fmt.Errorf("missing ids %v", missing))
	}

	return items, nil
}

// UniquePizzaIDs returns the distinct pizza ids of lines in request order, or
// an error if an id repeats.
func UniquePizzaIDs(lines []LineRequest) ([]int64, error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.PizzaID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				errors.New("each pizza may appear only once per order"))
		}
		seen[line.PizzaID] = struct{}{}
		ids = append(ids, line.PizzaID)
	}
	return ids, nil
}
