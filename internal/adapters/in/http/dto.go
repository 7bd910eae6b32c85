package http

import (
	"time"

	"github.com/shopspring/decimal"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/order"
)

type OrderItemRequest struct {
	PizzaID  int64 `json:"pizzaId" validate:"required"`
	Quantity int   `json:"quantity"`
}

type CreateOrderRequest struct {
	Items     []OrderItemRequest `json:"items" validate:"required,dive"`
	AddressID *string            `json:"addressId" validate:"omitempty,uuid"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateAddressRequest struct {
	Street    string   `json:"street" validate:"required"`
	Number    string   `json:"number" validate:"required"`
	City      string   `json:"city" validate:"required"`
	State     string   `json:"state" validate:"required"`
	ZipCode   string   `json:"zipCode" validate:"required"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude"`
}

type UpdateAddressRequest struct {
	Street    *string  `json:"street" validate:"omitempty,min=1"`
	Number    *string  `json:"number" validate:"omitempty,min=1"`
	City      *string  `json:"city" validate:"omitempty,min=1"`
	State     *string  `json:"state" validate:"omitempty,min=1"`
	ZipCode   *string  `json:"zipCode" validate:"omitempty,min=1"`
	Country   *string  `json:"country" validate:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude"`
}

type CreateDeliveryRequest struct {
	OrderID     string     `json:"orderId" validate:"required,uuid"`
	AddressID   string     `json:"addressId" validate:"required,uuid"`
	Status      string     `json:"status"`
	EstimatedAt *time.Time `json:"estimatedAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}

type UpdateDeliveryRequest struct {
	Status      *string    `json:"status"`
	EstimatedAt *time.Time `json:"estimatedAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}

type CreatePaymentIntentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"orderId"`
}

type OrderItemResponse struct {
	PizzaID   int64           `json:"pizzaId"`
	PizzaName string          `json:"pizzaName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    int64               `json:"userId"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []OrderItemResponse `json:"items"`
	Delivery  *DeliveryResponse   `json:"delivery"`
}

type DeliveryResponse struct {
	ID              string           `json:"id"`
	OrderID         string           `json:"orderId"`
	AddressID       string           `json:"addressId"`
	Status          string           `json:"status"`
	DistanceText    string           `json:"distanceText,omitempty"`
	DistanceMeters  int              `json:"distanceMeters,omitempty"`
	DurationText    string           `json:"durationText,omitempty"`
	DurationSeconds int              `json:"durationSeconds,omitempty"`
	EstimatedAt     *time.Time       `json:"estimatedAt,omitempty"`
	DeliveredAt     *time.Time       `json:"deliveredAt,omitempty"`
	Order           *OrderResponse   `json:"order,omitempty"`
	Address         *AddressResponse `json:"address,omitempty"`
}

type AddressResponse struct {
	ID        string   `json:"id"`
	UserID    int64    `json:"userId"`
	Street    string   `json:"street"`
	Number    string   `json:"number"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type PaymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

func orderFromView(v queries.OrderView) OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = OrderItemResponse{
			PizzaID:   it.PizzaID,
			PizzaName: it.PizzaName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	resp := OrderResponse{
		ID:        v.ID.String(),
		UserID:    int64(v.UserID),
		Status:    v.Status,
		Total:     v.Total,
		CreatedAt: v.CreatedAt,
		Items:     items,
	}
	if v.Delivery != nil {
		d := deliveryFromView(*v.Delivery)
		resp.Delivery = &d
	}
	return resp
}

func orderFromDomain(o *order.Order, d *delivery.Delivery) OrderResponse {
	src := o.Items()
	items := make([]OrderItemResponse, len(src))
	for i, it := range src {
		items[i] = OrderItemResponse{
			PizzaID:   it.PizzaID(),
			PizzaName: it.PizzaName(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
		}
	}
	resp := OrderResponse{
		ID:        o.ID().String(),
		UserID:    int64(o.UserID()),
		Status:    o.Status().String(),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt(),
		Items:     items,
	}
	if d != nil {
		dr := deliveryFromDomain(d)
		resp.Delivery = &dr
	}
	return resp
}

func deliveryFromView(v queries.DeliveryView) DeliveryResponse {
	return DeliveryResponse{
		ID:              v.ID.String(),
		OrderID:         v.OrderID.String(),
		AddressID:       v.AddressID.String(),
		Status:          v.Status,
		DistanceText:    v.DistanceText,
		DistanceMeters:  v.DistanceMeters,
		DurationText:    v.DurationText,
		DurationSeconds: v.DurationSeconds,
		EstimatedAt:     v.EstimatedAt,
		DeliveredAt:     v.DeliveredAt,
	}
}

func deliveryFromDomain(d *delivery.Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		ID:          d.ID().String(),
		OrderID:     d.OrderID().String(),
		AddressID:   d.AddressID().String(),
		Status:      d.Status().String(),
		EstimatedAt: d.Schedule().EstimatedAt,
		DeliveredAt: d.Schedule().DeliveredAt,
	}
	if r := d.Route(); r != nil {
		resp.DistanceText = r.DistanceText()
		resp.DistanceMeters = r.DistanceMeters()
		resp.DurationText = r.DurationText()
		resp.DurationSeconds = r.DurationSeconds()
	}
	return resp
}

func addressFromView(v queries.AddressView) AddressResponse {
	return AddressResponse{
		ID:        v.ID.String(),
		UserID:    int64(v.UserID),
		Street:    v.Street,
		Number:    v.Number,
		City:      v.City,
		State:     v.State,
		ZipCode:   v.ZipCode,
		Country:   v.Country,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
	}
}

func addressFromDomain(a *delivery.Address) AddressResponse {
	d := a.Details()
	resp := AddressResponse{
		ID:      a.ID().String(),
		UserID:  int64(a.UserID()),
		Street:  d.Street,
		Number:  d.Number,
		City:    d.City,
		State:   d.State,
		ZipCode: d.ZipCode,
		Country: d.Country,
	}
	if loc := a.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	return resp
}
