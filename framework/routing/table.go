package routing

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-nestforge/framework/pipeline"
)

// ErrDuplicateRoute is returned when two routes resolve to the same method
// and final path.
var ErrDuplicateRoute = errors.New("duplicate route")

// Entry is one row of the route table: a route with its final mount path and
// the module that owns it.
type Entry struct {
	Method       string
	Path         string
	Version      string
	Module       string
	Controller   string
	Handler      pipeline.Handler
	Guards       []pipeline.Guard
	Interceptors []pipeline.Interceptor
	Middleware   []Middleware
}

// String renders "GET /api/v1/users/{id}".
func (e Entry) String() string { return e.Method + " " + e.Path }

// Table is the merged, order-preserving route table of an application.
type Table struct {
	prefix  string
	entries []Entry
	index   map[string]int
}

// NewTable creates an empty table whose paths are wrapped by prefix.
func NewTable(prefix string) *Table {
	return &Table{prefix: prefix, index: make(map[string]int)}
}

// AddController appends every route of c, owned by module.
func (t *Table) AddController(module string, c Controller) error {
	defaultVersion := ""
	if v, ok := c.(Versioned); ok {
		defaultVersion = v.Version()
	}

	for _, r := range Collect(c) {
		version := r.version
		if version == "" {
			version = defaultVersion
		}
		e := Entry{
			Method:       r.method,
			Path:         FullPath(t.prefix, version, c.BasePath(), r.path),
			Version:      NormalizeVersion(version),
			Module:       module,
			Controller:   fmt.Sprintf("%T", c),
			Handler:      r.handler,
			Guards:       r.guards,
			Interceptors: r.interceptors,
			Middleware:   r.middleware,
		}
		if err := t.add(e); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) add(e Entry) error {
	if e.Handler == nil {
		return fmt.Errorf("route %s in %s has no handler", e, e.Controller)
	}
	key := e.String()
	if i, ok := t.index[key]; ok {
		return fmt.Errorf("%w: %s declared by %s and %s", ErrDuplicateRoute, key, t.entries[i].Controller, e.Controller)
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, e)
	return nil
}

// Entries returns the table rows in registration order.
func (t *Table) Entries() []Entry { return t.entries }

// Len returns the number of routes.
func (t *Table) Len() int { return len(t.entries) }
