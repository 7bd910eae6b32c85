// Package queries contains read operations. Handlers read through raw SQL on
// a *gorm.DB and return flat read models; they never load aggregates.
package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
)

// OrderView is an order with its items and, if one exists, its delivery.
type OrderView struct {
	ID        kernel.UUID
	UserID    kernel.UserID
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
	Items     []OrderItemView
	Delivery  *DeliveryView
}

type OrderItemView struct {
	PizzaID   int64
	PizzaName string
	Quantity  int
	UnitPrice decimal.Decimal
}

// DeliveryView has empty route fields for a delivery that is not routed yet.
type DeliveryView struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	AddressID       kernel.UUID
	Status          string
	DistanceText    string
	DistanceMeters  int
	DurationText    string
	DurationSeconds int
	EstimatedAt     *time.Time
	DeliveredAt     *time.Time
}

type AddressView struct {
	ID        kernel.UUID
	UserID    kernel.UserID
	Street    string
	Number    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Latitude  *float64
	Longitude *float64
}

type orderRow struct {
	ID        uuid.UUID
	UserID    int64
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
}

type orderItemRow struct {
	OrderID   uuid.UUID
	PizzaID   int64
	PizzaName string
	Quantity  int
	UnitPrice decimal.Decimal
}

type deliveryRow struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	AddressID       uuid.UUID
	Status          string
	DistanceText    *string
	DistanceMeters  *int
	DurationText    *string
	DurationSeconds *int
	EstimatedAt     *time.Time
	DeliveredAt     *time.Time
}

type addressRow struct {
	ID        uuid.UUID
	UserID    int64
	Street    string
	Number    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Latitude  *float64
	Longitude *float64
}

const deliveryColumns = `
	id, order_id, address_id, status,
	distance_text, distance_meters, duration_text, duration_seconds,
	estimated_at, delivered_at`

const addressColumns = `
	id, user_id, street, number, city, state, zip_code, country, latitude, longitude`

// loadOrders attaches items and deliveries to the given order rows with one
// query each.
func loadOrders(ctx context.Context, db *gorm.DB, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var items []orderItemRow
	if err := db.WithContext(ctx).Raw(`
		SELECT order_id, pizza_id, pizza_name, quantity, unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, pizza_id
	`, ids).Scan(&items).Error; err != nil {
		return nil, err
	}

	var deliveries []deliveryRow
	if err := db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE order_id IN ?
	`, ids).Scan(&deliveries).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uuid.UUID][]OrderItemView, len(rows))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], OrderItemView{
			PizzaID:   item.PizzaID,
			PizzaName: item.PizzaName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	deliveryByOrder := make(map[uuid.UUID]*DeliveryView, len(deliveries))
	for _, d := range deliveries {
		view, err := toDeliveryView(d)
		if err != nil {
			return nil, err
		}
		deliveryByOrder[d.OrderID] = &view
	}

	for _, r := range rows {
		id, err := kernel.UUIDFromBytes(r.ID[:])
		if err != nil {
			return nil, err
		}
		orderItems := itemsByOrder[r.ID]
		if orderItems == nil {
			orderItems = []OrderItemView{}
		}
		views = append(views, OrderView{
			ID:        id,
			UserID:    kernel.UserID(r.UserID),
			Status:    r.Status,
			Total:     r.Total,
			CreatedAt: r.CreatedAt,
			Items:     orderItems,
			Delivery:  deliveryByOrder[r.ID],
		})
	}

	return views, nil
}

func toDeliveryView(r deliveryRow) (DeliveryView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return DeliveryView{}, err
	}
	orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
	if err != nil {
		return DeliveryView{}, err
	}
	addressID, err := kernel.UUIDFromBytes(r.AddressID[:])
	if err != nil {
		return DeliveryView{}, err
	}

	view := DeliveryView{
		ID:          id,
		OrderID:     orderID,
		AddressID:   addressID,
		Status:      r.Status,
		EstimatedAt: r.EstimatedAt,
		DeliveredAt: r.DeliveredAt,
	}
	if r.DistanceText != nil {
		view.DistanceText = *r.DistanceText
	}
	if r.DistanceMeters != nil {
		view.DistanceMeters = *r.DistanceMeters
	}
	if r.DurationText != nil {
		view.DurationText = *r.DurationText
	}
	if r.DurationSeconds != nil {
		view.DurationSeconds = *r.DurationSeconds
	}
	return view, nil
}

func toAddressView(r addressRow) (AddressView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return AddressView{}, err
	}
	return AddressView{
		ID:        id,
		UserID:    kernel.UserID(r.UserID),
		Street:    r.Street,
		Number:    r.Number,
		City:      r.City,
		State:     r.State,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}
