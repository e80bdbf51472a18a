package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler("OrderPlaced", "OrderStatusChanged")

	registry.Register(handler, "OrderPlaced", "OrderStatusChanged")

	assert.Len(t, registry.GetHandlers("OrderPlaced"), 1)
	assert.Len(t, registry.GetHandlers("OrderStatusChanged"), 1)
	assert.Empty(t, registry.GetHandlers("ProductCreated"))
	assert.Equal(t, 1, registry.Len())
}

func TestHandlerRegistry_WildcardAppendedAfterTyped(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := newTestHandler("X")
	wildcard := newTestHandler()

	registry.Register(wildcard)
	registry.Register(typed, "X")

	handlers := registry.GetHandlers("X")
	assert.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, wildcard, handlers[1])
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler("X", "Y")
	registry.Register(handler, "X", "Y")
	registry.Register(handler)

	registry.Unregister(handler)

	assert.Empty(t, registry.GetHandlers("X"))
	assert.Empty(t, registry.GetHandlers("Y"))
	assert.Zero(t, registry.Len())
}

func TestHandlerRegistry_HandlerDeliveredOnce(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler("OrderPlaced")

	registry.Register(handler, "OrderPlaced")
	registry.Register(handler, "OrderPlaced", "OrderStatusChanged")
	assert.Len(t, registry.GetHandlers("OrderPlaced"), 1)
	assert.Len(t, registry.GetHandlers("OrderStatusChanged"), 1)

	// widening to every event keeps a single entry
	registry.Register(handler)
	assert.Len(t, registry.GetHandlers("OrderPlaced"), 1)
	assert.Len(t, registry.GetHandlers("ProductCreated"), 1)

	// a catch-all subscription is not narrowed by later typed registrations
	registry.Register(handler, "OrderPlaced")
	assert.Len(t, registry.GetHandlers("ProductCreated"), 1)
	assert.Equal(t, 1, registry.Len())
}
