package event

import (
	"slices"
	"sync"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// subscription is one handler and the event types it listens to. An empty
// type set means every event.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s *subscription) matches(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// HandlerRegistry tracks which handlers receive which event types. A
// handler is delivered an event at most once, however many times it was
// registered for it.
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []*subscription // registration order
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes handler to eventTypes, adding to any earlier
// registration. With no event types the handler receives every event.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := r.find(handler)
	if sub == nil {
		sub = &subscription{handler: handler, types: map[string]struct{}{}}
		r.subs = append(r.subs, sub)
	} else if len(sub.types) == 0 {
		return
	}
	if len(eventTypes) == 0 {
		clear(sub.types)
		return
	}
	for _, t := range eventTypes {
		sub.types[t] = struct{}{}
	}
}

// Unregister removes handler entirely
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = slices.DeleteFunc(r.subs, func(s *subscription) bool { return s.handler == handler })
}

// GetHandlers returns the handlers for eventType. Handlers registered for
// specific types come before catch-all handlers; within each group the
// registration order is kept.
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var typed, catchAll []shared.EventHandler
	for _, s := range r.subs {
		switch {
		case len(s.types) == 0:
			catchAll = append(catchAll, s.handler)
		case s.matches(eventType):
			typed = append(typed, s.handler)
		}
	}
	return append(typed, catchAll...)
}

// Len returns the number of registered handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

func (r *HandlerRegistry) find(handler shared.EventHandler) *subscription {
	for _, s := range r.subs {
		if s.handler == handler {
			return s
		}
	}
	return nil
}
