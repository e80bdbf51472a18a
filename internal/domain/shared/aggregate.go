package shared

// AggregateRoot is an entity that records domain events while it is being
// mutated. Services publish them once the change is persisted.
type AggregateRoot interface {
	Entity
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot is embedded by products, users and orders
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent `gorm:"-"`
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// GetDomainEvents returns the recorded events in order. The slice is a copy.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	if len(a.pending) == 0 {
		return nil
	}
	out := make([]DomainEvent, len(a.pending))
	copy(out, a.pending)
	return out
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}
