// Package callbacks is a minimal fan-out registry. Subscribers register
// a named callback; a callback returning false unsubscribes itself.
package callbacks

import (
	"sync"
)

type Callback[V any] struct {
	callbacks sync.Map
}

func New[V any]() *Callback[V] {
	return &Callback[V]{
		callbacks: sync.Map{},
	}
}

func (p *Callback[V]) Broadcast(msg V) {
	p.callbacks.Range(func(key, value any) bool {
		if fn, ok := value.(func(msg V) bool); ok {
			go func() {
				if !fn(msg) {
					p.callbacks.Delete(key)
				}
			}()
		}

		return true
	})
}

func (p *Callback[V]) Subscribe(name string, fn func(msg V) bool) {
	p.callbacks.Store(name, fn)
}

func (p *Callback[V]) Unsubscribe(name string) bool {
	_, found := p.callbacks.LoadAndDelete(name)

	return found
}

func (p *Callback[V]) Len() int {
	n := 0

	p.callbacks.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
