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

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

type GetDeliveryQuery struct {
	userID     kernel.UserID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(userID kernel.UserID, deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := errors.Join(userID.Validate(), deliveryID.Validate()); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{userID: userID, deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// GetDeliveryQueryResponse is a delivery with the order it serves and its
// destination.
type GetDeliveryQueryResponse struct {
	Delivery DeliveryView
	Order    OrderView
	Address  *AddressView
}

type GetDeliveryQueryHandler struct {
	db        *gorm.DB
	ownership services.OwnershipPolicy
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db, ownership: services.NewOwnershipPolicy()}
}

// Handle checks ownership through the delivery's order.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	var deliveries []deliveryRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE id = ?
	`, query.deliveryID.Bytes()).Scan(&deliveries).Error; err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if len(deliveries) == 0 {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.deliveryID.String())
	}

	var orders []orderRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, status, total, created_at
		FROM orders
		WHERE id = ?
	`, deliveries[0].OrderID).Scan(&orders).Error; err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if len(orders) == 0 {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("order", deliveries[0].OrderID.String())
	}

	if err := h.ownership.Authorize(services.AsRequester(query.userID), kernel.UserID(orders[0].UserID),
		"delivery", query.deliveryID.String()); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	orderViews, err := loadOrders(ctx, h.db, orders)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	deliveryView, err := toDeliveryView(deliveries[0])
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	var addresses []addressRow
	if err = h.db.WithContext(ctx).Raw(`
		SELECT `+addressColumns+`
		FROM addresses
		WHERE id = ?
	`, deliveries[0].AddressID).Scan(&addresses).Error; err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	response := GetDeliveryQueryResponse{Delivery: deliveryView, Order: orderViews[0]}
	if len(addresses) > 0 {
		addressView, addrErr := toAddressView(addresses[0])
		if addrErr != nil {
			return GetDeliveryQueryResponse{}, addrErr
		}
		response.Address = &addressView
	}
	return response, nil
}
