package kernel

// DomainEvent is raised by an aggregate and dispatched after the unit of work
// that persisted it commits.
type DomainEvent interface {
	EventName() string
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
