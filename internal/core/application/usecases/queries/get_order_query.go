package queries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order. A nil requester is the admin path.
type GetOrderQuery struct {
	orderID   kernel.UUID
	requester services.Requester

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, requester services.Requester) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID:   orderID,
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type GetOrderQueryHandler struct {
	db        *gorm.DB
	ownership services.OwnershipPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, ownership: services.NewOwnershipPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, status, total, created_at
		FROM orders
		WHERE id = ?
	`, query.orderID.Bytes()).Scan(&rows).Error; err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID.String())
	}

	if err := h.ownership.Authorize(query.requester, kernel.UserID(rows[0].UserID),
		"order", query.orderID.String()); err != nil {
		return OrderView{}, err
	}

	views, err := loadOrders(ctx, h.db, rows)
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}
