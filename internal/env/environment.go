// Package env implements Lime's lexically-scoped symbol table: a parent-
// chained environment mapping a name to the ir.Value/ir.Type pair bound to
// it, used by the codegen package while walking the AST.
package env

import "github.com/noahgarrett/limec/internal/ir"

// Binding is the (value, type) pair recorded for a defined name. For a
// variable or parameter, Value is the pointer returned by its alloca
// and IsSlot is true: resolving the identifier means loading through
// it. For a function or a builtin constant, Value is usable directly
// and IsSlot is false.
type Binding struct {
	Value  ir.Value
	Type   ir.Type
	IsSlot bool
}

// Environment is a symbol table node in a parent chain. The root
// environment (Outer == nil) holds module-level globals and function
// declarations; each function body and each for loop opens a fresh
// enclosed Environment over its containing scope. Other blocks and
// while loops share the enclosing scope.
type Environment struct {
	records map[string]Binding
	outer   *Environment
}

// New creates a root environment with no outer scope.
func New() *Environment {
	return &Environment{records: make(map[string]Binding)}
}

// NewEnclosed creates an environment nested inside outer. Lookups that
// miss here fall through to outer, and so on up the chain.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{records: make(map[string]Binding), outer: outer}
}

// Define binds name to binding in the current scope, unconditionally
// overwriting any existing binding for name in this scope (it does not
// touch an outer scope's binding of the same name).
func (e *Environment) Define(name string, binding Binding) {
	e.records[name] = binding
}

// Lookup resolves name by walking from this scope up through outer
// scopes, returning the first binding found. The second return value
// is false if name is not defined anywhere in the chain.
func (e *Environment) Lookup(name string) (Binding, bool) {
	if b, ok := e.records[name]; ok {
		return b, true
	}
	if e.outer != nil {
		return e.outer.Lookup(name)
	}
	return Binding{}, false
}

// Outer returns the enclosing environment, or nil at the root.
func (e *Environment) Outer() *Environment {
	return e.outer
}
