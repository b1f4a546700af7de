package codegen

import "github.com/noahgarrett/limec/internal/ir"

// compilePrintf lowers a call to the `printf` builtin. The reference
// compiler resolves the format string by counting how many string
// literals it has interned so far and indexing back into that list,
// which misresolves as soon as a function makes more than one literal
// printf call: the counter has moved on by the time the second call is
// lowered. Lime carries the first argument's already-resolved (value,
// type) straight through instead, so the dispatch can never point at
// the wrong global.
func (c *Compiler) compilePrintf(args []ir.Value, argTypes []ir.Type) (ir.Value, ir.Type) {
	if len(args) == 0 {
		c.errorf("printf requires at least one argument")
		return nil, nil
	}

	var fmtPtr ir.Value
	switch t := argTypes[0].(type) {
	case *ir.PointerType:
		// Already an i8* value: a `str` variable's load, or the result
		// of some other expression yielding a string pointer directly.
		if t.Elem != ir.I8 {
			c.errorf("printf: first argument must be a string")
			return nil, nil
		}
		fmtPtr = args[0]
	case *ir.ArrayType:
		// A string literal passed straight into the call, still typed
		// as its backing `[N x i8]` global: take its address and cast
		// down to i8*.
		g, ok := args[0].(*ir.GlobalVariable)
		if !ok {
			c.errorf("printf: first argument must be a string")
			return nil, nil
		}
		elemPtr := c.builder.GEPToFirstElem(g)
		fmtPtr = c.builder.BitCast(elemPtr, ir.I8Ptr)
	default:
		c.errorf("printf: first argument must be a string")
		return nil, nil
	}

	callArgs := append([]ir.Value{fmtPtr}, args[1:]...)

	binding, ok := c.env.Lookup("printf")
	if !ok {
		c.errorf("printf: builtin not registered")
		return nil, nil
	}
	fn := binding.Value.(*ir.Function)

	return c.builder.Call(fn, callArgs), fn.ReturnType
}
