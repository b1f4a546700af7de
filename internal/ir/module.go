package ir

import "fmt"

// Module is the top-level compilation unit: a set of global variables
// (Lime interns every string literal as one) and functions, both
// declarations and definitions.
type Module struct {
	Name      string
	Globals   []*GlobalVariable
	Functions []*Function

	strCounter int
	buildID    string
}

// NewModule creates an empty module named name.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// NewFunction declares (and, once blocks are appended, defines) a
// function named name in the module.
func (m *Module) NewFunction(name string, params []*Param, ret Type, variadic bool) *Function {
	fn := &Function{Name: name, Params: params, ReturnType: ret, Variadic: variadic, Module: m}
	m.Functions = append(m.Functions, fn)
	return fn
}

// GetFunction looks up a previously declared or defined function by
// name, mirroring module.get_global in the reference compiler.
func (m *Module) GetFunction(name string) (*Function, bool) {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// GetGlobal looks up a global variable by name.
func (m *Module) GetGlobal(name string) (*GlobalVariable, bool) {
	for _, g := range m.Globals {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// AddGlobal registers an already-constructed global variable.
func (m *Module) AddGlobal(g *GlobalVariable) *GlobalVariable {
	m.Globals = append(m.Globals, g)
	return g
}

// InternString creates (or, if the module wants interning-per-literal,
// always creates afresh) a new `__str_N` global constant holding src
// with a trailing NUL appended, matching the reference compiler's
// string-literal handling.
func (m *Module) InternString(src string) *GlobalVariable {
	name := fmt.Sprintf("__str_%d", m.strCounter)
	m.strCounter++
	bytes := append([]byte(src), 0)
	g := &GlobalVariable{
		Name:        name,
		Elem:        &ArrayType{Elem: I8, Len: len(bytes)},
		Constant:    true,
		Initializer: &ConstString{Bytes: bytes},
	}
	return m.AddGlobal(g)
}
