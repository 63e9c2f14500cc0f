// Package dispatch routes named operation calls to their handlers. Handlers
// receive the raw argument list the caller sent; authorization guards wrap
// them before registration.
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/meridian-erp/meridian/internal/authz"
	"github.com/meridian-erp/meridian/internal/shared"
)

// Dispatcher maps operation names to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]authz.HandlerFunc
}

// NewDispatcher constructs an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]authz.HandlerFunc)}
}

// Register binds a handler to an operation name, replacing any previous
// binding.
func (d *Dispatcher) Register(op string, handler authz.HandlerFunc) {
	if op == "" || handler == nil {
		return
	}
	d.mu.Lock()
	d.handlers[op] = handler
	d.mu.Unlock()
}

// Dispatch invokes the handler registered for op with the given arguments.
func (d *Dispatcher) Dispatch(ctx context.Context, op string, args []any) (any, error) {
	d.mu.RLock()
	handler, ok := d.handlers[op]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownOperation, op)
	}
	return handler(ctx, args...)
}

// Operations lists registered operation names, sorted.
func (d *Dispatcher) Operations() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ops := make([]string, 0, len(d.handlers))
	for op := range d.handlers {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
