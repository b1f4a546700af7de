package ir

import "fmt"

// Function is a module-level function definition (or, with no blocks,
// a declaration of an external symbol such as printf).
type Function struct {
	Name       string
	Params     []*Param
	ReturnType Type
	Variadic   bool
	Blocks     []*BasicBlock
	Module     *Module

	blockCounter int
	tempCounter  int
	nameUses     map[string]int
}

// Type returns the function's signature as a FunctionType, letting a
// Function stand in as a callable Value.
func (f *Function) Type() Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Typ
	}
	return &FunctionType{Params: params, Return: f.ReturnType, Variadic: f.Variadic}
}

func (f *Function) Ident() string { return "@" + f.Name }
func (f *Function) irValue()      {}

// IsDeclaration reports whether f has a body.
func (f *Function) IsDeclaration() bool { return len(f.Blocks) == 0 }

// Entry returns the function's first block, or nil if it has none.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// NewBlock appends a fresh, empty basic block to f. hint is used as a
// human-readable prefix; a numeric suffix is appended to keep names
// unique within the function (codegen's loop labels, e.g.
// "while.entry.2"/"while.otherwise.3", follow this pattern).
func (f *Function) NewBlock(hint string) *BasicBlock {
	f.blockCounter++
	b := &BasicBlock{Name: fmt.Sprintf("%s.%d", hint, f.blockCounter), Function: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// nextTemp returns a fresh unnamed-temporary register name.
func (f *Function) nextTemp() string {
	name := fmt.Sprintf("tmp%d", f.tempCounter)
	f.tempCounter++
	return name
}

// uniqueName disambiguates a source-level name (e.g. a variable's
// alloca) against every other use of that name within the function, so
// sibling scopes that happen to declare the same identifier (two
// `for (let i: int = 0; ...)` loops in one function, say) never emit
// two SSA values with the same register name.
func (f *Function) uniqueName(base string) string {
	if f.nameUses == nil {
		f.nameUses = make(map[string]int)
		for _, p := range f.Params {
			f.nameUses[p.Name] = 1
		}
	}
	n := f.nameUses[base]
	f.nameUses[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, n)
}
