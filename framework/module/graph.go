package module

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/routing"
)

// ErrNilModule is returned when the root or one of the imports is nil.
var ErrNilModule = errors.New("nil module definition")

// Error reports a failure while initializing one module.
type Error struct {
	Module string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("module `%s`: %v", e.Module, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Bound is a controller together with the module that declared it.
type Bound struct {
	Module     Ref
	Controller routing.Controller
}

// Graph is the result of a successful initialization.
type Graph struct {
	Container   *container.Container
	Controllers []Bound
	// Modules lists every module in the order its providers were registered.
	Modules []Ref
	Globals []Ref
	Exports map[Ref][]string
}

// Option configures Initialize.
type Option func(*initializer)

// WithLogger sets the logger used for boot diagnostics. Defaults to the
// container's logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *initializer) { in.logger = l }
}

type initializer struct {
	c      *container.Container
	logger *slog.Logger

	visited map[Ref]bool
	// owned maps a module to the type names registered by it and its imports.
	owned map[Ref][]string
	defs  map[Ref]Definition
	graph *Graph
}

// Initialize walks the module graph rooted at root and registers every
// provider into c.
//
// Imports are initialized before the importing module; each module is
// initialized exactly once however many modules import it. Providers are
// registered in declaration order and the first failure aborts the walk.
// Once the whole graph is registered, OnModuleInit hooks run in
// initialization order.
func Initialize(root Definition, c *container.Container, opts ...Option) (*Graph, error) {
	in := &initializer{
		c:       c,
		logger:  c.Logger(),
		visited: make(map[Ref]bool),
		owned:   make(map[Ref][]string),
		defs:    make(map[Ref]Definition),
		graph: &Graph{
			Container: c,
			Exports:   make(map[Ref][]string),
		},
	}
	for _, opt := range opts {
		opt(in)
	}

	if root == nil {
		return nil, ErrNilModule
	}
	rootRef := RefOf(root)
	controllers, err := in.collectControllers(root, map[Ref]bool{})
	if err != nil {
		return nil, err
	}
	in.graph.Controllers = controllers

	if _, err := in.visit(root); err != nil {
		return nil, err
	}

	for _, ref := range in.graph.Modules {
		hook, ok := in.defs[ref].(Initializer)
		if !ok {
			continue
		}
		if err := hook.OnModuleInit(c); err != nil {
			return nil, &Error{Module: ref.Name(), Err: fmt.Errorf("on module init: %w", err)}
		}
	}

	in.logger.Info("module graph initialized",
		"root", rootRef.Name(),
		"modules", len(in.graph.Modules),
		"controllers", len(in.graph.Controllers),
		"providers", c.Len(),
	)
	return in.graph, nil
}

// visit initializes def and returns the type names it and its imports own.
// A module already visited, including one still being visited higher up an
// import cycle, is skipped.
func (in *initializer) visit(def Definition) ([]string, error) {
	ref := RefOf(def)
	if in.visited[ref] {
		return in.owned[ref], nil
	}
	in.visited[ref] = true

	var owned []string
	for i, imp := range def.Imports() {
		if imp == nil {
			return nil, nilImport(ref, i)
		}
		names, err := in.visit(imp)
		if err != nil {
			return nil, err
		}
		owned = append(owned, names...)
	}

	for _, p := range def.Providers() {
		if err := p.Register(in.c); err != nil {
			return nil, &Error{Module: ref.Name(), Err: err}
		}
		owned = append(owned, p.TypeName())
	}

	in.owned[ref] = owned
	in.defs[ref] = def
	in.graph.Modules = append(in.graph.Modules, ref)
	if def.Global() {
		in.graph.Globals = append(in.graph.Globals, ref)
	}
	if exports := def.Exports(); len(exports) > 0 {
		in.graph.Exports[ref] = exports
		in.checkExports(ref, exports, owned)
	}

	in.logger.Debug("module initialized", "module", ref.Name(), "global", def.Global())
	return owned, nil
}

// checkExports warns about exported names the module cannot provide.
// Resolution does not consult exports.
func (in *initializer) checkExports(ref Ref, exports, owned []string) {
	for _, name := range exports {
		if !slices.Contains(owned, name) {
			in.logger.Warn("module exports a type it does not provide",
				"module", ref.Name(), "export", name)
		}
	}
}

// collectControllers lists def's controllers followed by those of its imports,
// in import order, each module contributing once.
func (in *initializer) collectControllers(def Definition, seen map[Ref]bool) ([]Bound, error) {
	ref := RefOf(def)
	if seen[ref] {
		return nil, nil
	}
	seen[ref] = true

	var out []Bound
	for _, ctrl := range def.Controllers() {
		out = append(out, Bound{Module: ref, Controller: ctrl})
	}
	for i, imp := range def.Imports() {
		if imp == nil {
			return nil, nilImport(ref, i)
		}
		bound, err := in.collectControllers(imp, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, bound...)
	}
	return out, nil
}

func nilImport(ref Ref, i int) error {
	return &Error{Module: ref.Name(), Err: fmt.Errorf("import %d: %w", i, ErrNilModule)}
}
