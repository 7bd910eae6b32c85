// Package commands contains business operations that modify system state.
// Every command is a value built by its constructor (input validation happens
// there, before any storage access) and executed by a handler that owns one
// unit of work.
package commands

import (
	"context"

	"pizzeria/internal/core/ports"
)

// Unit of Work interfaces narrow the transaction to the repositories a handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	PizzaRepoFactory interface {
		PizzaRepository() ports.PizzaRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AddressUoW manages transactions for address-only operations.
	AddressUoW interface {
		TxManager
		AddressRepoFactory
	}

	AddressUoWFactory interface {
		Create() AddressUoW
	}

	// DeliveryUoW spans an order, its address and its delivery.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		AddressRepoFactory
		DeliveryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW spans every repository. Order creation reads the catalog and the
	// address and writes the order and its delivery stub in one transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		AddressRepoFactory
		DeliveryRepoFactory
		PizzaRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
