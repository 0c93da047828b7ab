// Package observable provides a conflating state container that can be watched by subscribers.
package observable

import (
	"context"
	"sync"
)

// Reader is the read-only view of a Value handed to consumers.
type Reader[T any] interface {
	Get() T
	Subscribe(ctx context.Context) <-chan T
}

// Value holds the latest state of type T and pushes every change to its subscribers.
// A subscriber that falls behind only ever sees the most recent value; writers never block.
type Value[T any] struct {
	mu     sync.RWMutex
	val    T
	loaded bool
	subs   map[chan T]struct{}
}

// NewValue returns a Value already holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{val: initial, loaded: true, subs: make(map[chan T]struct{})}
}

// NewEmpty returns a Value with no state yet. Subscribers receive nothing until the first Set.
func NewEmpty[T any]() *Value[T] {
	return &Value[T]{subs: make(map[chan T]struct{})}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.val
}

// Loaded reports whether the value has been set at least once.
func (v *Value[T]) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.loaded
}

// Set stores val and notifies subscribers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.store(val)
}

// Update replaces the value with fn(current) atomically and returns the new value.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := fn(v.val)
	v.store(next)

	return next
}

// Subscribe returns a channel that receives the current value (if any) and every later one.
// The channel is closed once ctx is done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	updates := make(chan T, 1)

	v.mu.Lock()
	if v.loaded {
		updates <- v.val
	}
	v.subs[updates] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, updates)
		close(updates)
		v.mu.Unlock()
	}()

	return updates
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.subs)
}

// store must be called with mu held. Every send happens under mu, so the
// buffer is always free after the drain.
func (v *Value[T]) store(val T) {
	v.val = val
	v.loaded = true

	for updates := range v.subs {
		select {
		case <-updates:
		default:
		}
		updates <- val
	}
}
