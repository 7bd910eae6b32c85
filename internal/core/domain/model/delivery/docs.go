// Package delivery contains the Delivery aggregate and the customer Address
// entity it is routed to.
//
// A Delivery is bound to exactly one order for its whole life. It carries the
// route snapshot (distance and duration as returned by the routing provider)
// captured when it was created. The one exception is the stub written during
// order creation: it has no route until ResolveRoute is called.
package delivery
