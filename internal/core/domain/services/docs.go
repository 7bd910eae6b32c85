// Package services provides domain services for rules that span more than one
// aggregate:
//   - OrderPricer: turns requested quantities and catalog entries into priced line items
//   - OwnershipPolicy: the single ownership predicate applied to orders, addresses and deliveries
package services
