// Package kernel provides the shared value objects of the pizzeria domain.
//
// The package includes:
//   - UUID: identifier of orders, deliveries and addresses
//   - UserID: identifier of a customer issued by the external auth system
//   - Location: a validated latitude/longitude pair
//
// All values are immutable. Zero values are invalid and fail Validate.
package kernel
