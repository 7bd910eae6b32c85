package postgres

import (
	"gorm.io/gorm"

	"pizzeria/internal/adapters/out/postgres/addressrepo"
	"pizzeria/internal/adapters/out/postgres/deliveryrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/postgres/pizzarepo"
	"pizzeria/internal/adapters/out/postgres/webhookrepo"
)

// Migrate creates or updates every table the service owns or reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&pizzarepo.PizzaDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&addressrepo.AddressDTO{},
		&deliveryrepo.DeliveryDTO{},
		&webhookrepo.ProcessedEventDTO{},
	)
}
