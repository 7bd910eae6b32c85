// Package deliveryrepo maps delivery aggregates to the deliveries table.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
)

// DeliveryDTO is the deliveries row. Route columns are NULL for a stub.
type DeliveryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AddressID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(16);not null"`
	DistanceText    *string   `gorm:"type:varchar(64)"`
	DistanceMeters  *int      `gorm:"type:int"`
	DurationText    *string   `gorm:"type:varchar(64)"`
	DurationSeconds *int      `gorm:"type:int"`
	EstimatedAt     *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// updatableColumns excludes the order binding, which never changes.
var updatableColumns = []string{
	"address_id", "status",
	"distance_text", "distance_meters", "duration_text", "duration_seconds",
	"estimated_at", "delivered_at", "updated_at",
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:          d.ID().Bytes(),
		OrderID:     d.OrderID().Bytes(),
		AddressID:   d.AddressID().Bytes(),
		Status:      d.Status().String(),
		EstimatedAt: d.Schedule().EstimatedAt,
		DeliveredAt: d.Schedule().DeliveredAt,
	}

	if route := d.Route(); route != nil {
		distanceText, durationText := route.DistanceText(), route.DurationText()
		distanceMeters, durationSeconds := route.DistanceMeters(), route.DurationSeconds()
		dto.DistanceText = &distanceText
		dto.DistanceMeters = &distanceMeters
		dto.DurationText = &durationText
		dto.DurationSeconds = &durationSeconds
	}

	return dto
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var route *delivery.Route
	if dto.DistanceText != nil && dto.DurationText != nil {
		r, routeErr := delivery.NewRoute(
			*dto.DistanceText, deref(dto.DistanceMeters),
			*dto.DurationText, deref(dto.DurationSeconds),
		)
		if routeErr != nil {
			return nil, routeErr
		}
		route = &r
	}

	return delivery.RestoreDelivery(id, orderID, addressID, status, route, delivery.Schedule{
		EstimatedAt: dto.EstimatedAt,
		DeliveredAt: dto.DeliveredAt,
	})
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func statusValues(statuses []delivery.Status) []string {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s.String())
	}
	return values
}
