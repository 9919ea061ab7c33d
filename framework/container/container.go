package container

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the process-wide service registry.
//
// Values are keyed by their static Go type: at most one value is stored per
// type. Register refuses to overwrite, Replace always overwrites, Resolve
// hands back the stored value. Reads run concurrently; writes take the
// exclusive lock.
//
// A writer that panics while holding the lock poisons the container. The panic
// is recovered and reported as ErrWriteLockPoisoned, and every later operation
// fails with ErrReadLockPoisoned or ErrWriteLockPoisoned.
type Container struct {
	mu       sync.RWMutex
	entries  map[reflect.Type]any
	poisoned atomic.Bool
	logger   *slog.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		entries: make(map[reflect.Type]any),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the container's logger.
func (c *Container) Logger() *slog.Logger { return c.logger }

// Poisoned reports whether a writer panicked while holding the lock.
func (c *Container) Poisoned() bool { return c.poisoned.Load() }

// Len returns the number of stored values.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TypeNames returns the sorted names of all stored types (for debugging).
func (c *Container) TypeNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for t := range c.entries {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

// write runs fn under the exclusive lock and turns a panic into poisoning.
func (c *Container) write(op string, t reflect.Type, fn func() error) (err error) {
	if c.poisoned.Load() {
		return &Error{Op: op, Type: t.String(), Err: ErrWriteLockPoisoned}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			c.poisoned.Store(true)
			c.logger.Error("container writer panicked", "op", op, "type", t.String(), "panic", fmt.Sprint(r))
			err = &Error{Op: op, Type: t.String(), Err: ErrWriteLockPoisoned}
		}
	}()

	if c.poisoned.Load() {
		return &Error{Op: op, Type: t.String(), Err: ErrWriteLockPoisoned}
	}
	return fn()
}

func (c *Container) lookup(t reflect.Type) (any, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.poisoned.Load() {
		return nil, false, &Error{Op: "resolve", Type: t.String(), Err: ErrReadLockPoisoned}
	}
	v, ok := c.entries[t]
	return v, ok, nil
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores value under T. It fails with ErrAlreadyRegistered when a
// T is already present.
//
//	err := container.Register(c, &AppConfig{AppName: "NestForge"})
func Register[T any](c *Container, value T) error {
	t := reflect.TypeFor[T]()
	return c.write("register", t, func() error {
		if _, ok := c.entries[t]; ok {
			return &Error{Op: "register", Type: t.String(), Err: ErrAlreadyRegistered}
		}
		c.entries[t] = value
		return nil
	})
}

// Replace stores value under T, overwriting any previous value.
// Test harnesses use it to swap real services for fakes.
func Replace[T any](c *Container, value T) error {
	t := reflect.TypeFor[T]()
	return c.write("replace", t, func() error {
		c.entries[t] = value
		return nil
	})
}

// Extend decorates the stored T in place.
//
// fn runs while the exclusive lock is held and must not call back into the
// container. A panic inside fn poisons the container.
//
//	container.Extend(c, func(l Logger) Logger { return &timestamped{inner: l} })
func Extend[T any](c *Container, fn func(T) T) error {
	t := reflect.TypeFor[T]()
	return c.write("extend", t, func() error {
		raw, ok := c.entries[t]
		if !ok {
			return &Error{Op: "extend", Type: t.String(), Err: ErrNotRegistered}
		}
		v, ok := raw.(T)
		if !ok {
			return &Error{Op: "extend", Type: t.String(), Err: ErrDowncastFailed}
		}
		c.entries[t] = fn(v)
		return nil
	})
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the value stored under T.
//
//	cfg, err := container.Resolve[*AppConfig](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()

	raw, ok, err := c.lookup(t)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &Error{Op: "resolve", Type: t.String(), Err: ErrNotRegistered}
	}
	v, ok := raw.(T)
	if !ok {
		return zero, &Error{Op: "resolve", Type: t.String(), Err: ErrDowncastFailed}
	}
	return v, nil
}

// ResolveInModule is Resolve, with a not-registered error annotated with the
// name of the module asking for T. Other errors pass through unchanged.
func ResolveInModule[T any](c *Container, module string) (T, error) {
	v, err := Resolve[T](c)
	if err == nil {
		return v, nil
	}
	if ce, ok := err.(*Error); ok && ce.Err == ErrNotRegistered {
		return v, &Error{Op: ce.Op, Type: ce.Type, Module: module, Err: ErrNotRegistered}
	}
	return v, err
}

// MustResolve is like Resolve but panics on failure. Intended for main
// packages and tests where a missing service is a wiring bug.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("container: %v", err))
	}
	return v
}

// Has reports whether a T is stored.
func Has[T any](c *Container) bool {
	_, ok, err := c.lookup(reflect.TypeFor[T]())
	return err == nil && ok
}

// TypeName returns the name used for T in errors and logs.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
