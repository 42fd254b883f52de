// Package lifecycle runs registered hooks around component construction
// during application wiring. Components without hooks pass through
// unmodified; hooks may decorate or replace the component they receive.
package lifecycle

import (
	"fmt"
	"reflect"
	"sync"
)

// Processor observes a component around its initialization. Either phase may
// return a replacement for the component.
type Processor interface {
	BeforeInit(component interface{}) (interface{}, error)
	AfterInit(component interface{}) (interface{}, error)
}

// NoOp passes components through untouched. Embed it to implement only one
// phase.
type NoOp struct{}

func (NoOp) BeforeInit(component interface{}) (interface{}, error) { return component, nil }
func (NoOp) AfterInit(component interface{}) (interface{}, error)  { return component, nil }

// Registry maps component types to their processors. Registration happens
// during single-threaded startup; lookups may run concurrently afterwards.
type Registry struct {
	mu    sync.RWMutex
	procs map[reflect.Type][]Processor
}

func NewRegistry() *Registry {
	return &Registry{procs: make(map[reflect.Type][]Processor)}
}

// Register attaches p to components of prototype's dynamic type.
func (r *Registry) Register(prototype interface{}, p Processor) {
	if prototype == nil || p == nil {
		return
	}
	t := reflect.TypeOf(prototype)
	r.mu.Lock()
	r.procs[t] = append(r.procs[t], p)
	r.mu.Unlock()
}

func (r *Registry) lookup(component interface{}) []Processor {
	if component == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.procs[reflect.TypeOf(component)]
}

// BeforeInit runs the before-phase hooks for component's type, in
// registration order.
func (r *Registry) BeforeInit(component interface{}) (interface{}, error) {
	for _, p := range r.lookup(component) {
		next, err := p.BeforeInit(component)
		if err != nil {
			return component, fmt.Errorf("before init %T: %w", component, err)
		}
		if next != nil {
			component = next
		}
	}
	return component, nil
}

// AfterInit runs the after-phase hooks for component's type, in registration
// order.
func (r *Registry) AfterInit(component interface{}) (interface{}, error) {
	for _, p := range r.lookup(component) {
		next, err := p.AfterInit(component)
		if err != nil {
			return component, fmt.Errorf("after init %T: %w", component, err)
		}
		if next != nil {
			component = next
		}
	}
	return component, nil
}

// Init runs both phases. Wiring code calls it as each component comes out of
// its constructor.
func (r *Registry) Init(component interface{}) (interface{}, error) {
	component, err := r.BeforeInit(component)
	if err != nil {
		return component, err
	}
	return r.AfterInit(component)
}
