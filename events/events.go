// Package events is a named broadcast bus. Listeners are keyed by an id
// returned at registration and are called synchronously from Broadcast.
package events

import (
	"slices"

	"github.com/google/uuid"
)

type listener struct {
	id string
	// plain is set for listeners that take no parameter.
	plain func()
	// deliver hands a broadcast parameter to a typed listener and reports
	// whether the parameter had the listener's type.
	deliver func(p any) bool
	// zero calls a typed listener with the zero value of its type.
	zero func()
	// withoutParam makes a typed listener fire for broadcasts that carry no
	// parameter of its type.
	withoutParam bool
}

func (l listener) fire() {
	if l.plain != nil {
		l.plain()
		return
	}
	if l.withoutParam {
		l.zero()
	}
}

func (l listener) fireWith(p any) {
	if l.plain != nil {
		l.plain()
		return
	}
	if !l.deliver(p) && l.withoutParam {
		l.zero()
	}
}

// Bus holds the listeners of every named event. The zero value is not
// usable; create one with New. A Bus is not safe for concurrent use.
type Bus struct {
	events map[string][]listener
}

func New() *Bus {
	return &Bus{events: make(map[string][]listener)}
}

// Option configures a typed listener.
type Option func(*listener)

// InvokeWithoutParameter makes the listener fire with the zero value of its
// type when a broadcast carries no parameter, or one of another type.
func InvokeWithoutParameter() Option {
	return func(l *listener) { l.withoutParam = true }
}

func (b *Bus) add(name string, l listener) string {
	l.id = uuid.NewString()
	b.events[name] = append(b.events[name], l)
	return l.id
}

// AddListener registers fn for every broadcast of name and returns the
// listener id.
func (b *Bus) AddListener(name string, fn func()) string {
	if fn == nil {
		return ""
	}
	return b.add(name, listener{plain: fn})
}

// AddListener registers fn for broadcasts of name that carry a T. The
// parameter type is bound here so broadcasting never inspects listeners by
// type name.
func AddListener[T any](b *Bus, name string, fn func(T), opts ...Option) string {
	if fn == nil {
		return ""
	}
	l := listener{
		deliver: func(p any) bool {
			v, ok := p.(T)
			if ok {
				fn(v)
			}
			return ok
		},
		zero: func() {
			var v T
			fn(v)
		},
	}
	for _, opt := range opts {
		opt(&l)
	}
	return b.add(name, l)
}

// Broadcast fires name without a parameter.
func (b *Bus) Broadcast(name string) {
	for _, l := range slices.Clone(b.events[name]) {
		l.fire()
	}
}

// Broadcast fires name with p. Listeners of other parameter types are
// skipped unless they were registered with InvokeWithoutParameter.
func Broadcast[T any](b *Bus, name string, p T) {
	for _, l := range slices.Clone(b.events[name]) {
		l.fireWith(p)
	}
}

// RemoveListener unregisters the listener with id. The event is dropped once
// its last listener is removed.
func (b *Bus) RemoveListener(name, id string) bool {
	ls, ok := b.events[name]
	if !ok {
		return false
	}
	i := slices.IndexFunc(ls, func(l listener) bool { return l.id == id })
	if i < 0 {
		return false
	}
	ls = slices.Delete(ls, i, i+1)
	if len(ls) == 0 {
		delete(b.events, name)
	} else {
		b.events[name] = ls
	}
	return true
}

// ClearListener drops every listener of name.
func (b *Bus) ClearListener(name string) {
	delete(b.events, name)
}

func (b *Bus) ClearAll() {
	clear(b.events)
}

// Listeners returns the number of listeners registered for name.
func (b *Bus) Listeners(name string) int {
	return len(b.events[name])
}
