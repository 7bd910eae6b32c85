package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/catalog"
)

// PizzaRepository reads the catalog.
type PizzaRepository interface {
	// GetByIDs fetches the pizzas with the given ids in one query. Missing ids
	// are simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]*catalog.Pizza, error)
}
