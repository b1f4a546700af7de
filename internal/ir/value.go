package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is anything that can appear as an operand: a constant, a
// global, a function, a parameter, or the result of an instruction.
type Value interface {
	Type() Type
	// Ident is the value's textual operand form, e.g. "%tmp3", "@main",
	// "42", or "1.5".
	Ident() string
	irValue()
}

// ConstInt is an integer constant of a given width.
type ConstInt struct {
	Val int64
	Typ *IntType
}

func (c *ConstInt) Type() Type    { return c.Typ }
func (c *ConstInt) Ident() string { return strconv.FormatInt(c.Val, 10) }
func (c *ConstInt) irValue()      {}

// ConstBool is shorthand for an i1 ConstInt.
func ConstBool(v bool) *ConstInt {
	if v {
		return &ConstInt{Val: 1, Typ: I1}
	}
	return &ConstInt{Val: 0, Typ: I1}
}

// ConstFloat is a single-precision (32-bit) floating point constant.
type ConstFloat struct{ Val float64 }

func (c *ConstFloat) Type() Type    { return Float32 }
func (c *ConstFloat) Ident() string { return strconv.FormatFloat(c.Val, 'g', -1, 64) }
func (c *ConstFloat) irValue()      {}

// GlobalVariable is a module-level symbol. Lime creates one for each
// interned string literal.
type GlobalVariable struct {
	Name        string
	Elem        Type
	Constant    bool
	Initializer Value
}

func (g *GlobalVariable) Type() Type    { return &PointerType{Elem: g.Elem} }
func (g *GlobalVariable) Ident() string { return "@" + g.Name }
func (g *GlobalVariable) irValue()      {}

// ConstString is the initializer for an interned string literal: a
// byte array ending in a NUL, rendered as an LLVM-style c"..." literal.
type ConstString struct {
	Bytes []byte
}

func (c *ConstString) Type() Type { return &ArrayType{Elem: I8, Len: len(c.Bytes)} }
func (c *ConstString) Ident() string {
	var b strings.Builder
	b.WriteString(`c"`)
	for _, ch := range c.Bytes {
		switch {
		case ch == '"' || ch == '\\':
			fmt.Fprintf(&b, `\%02X`, ch)
		case ch >= 0x20 && ch < 0x7f:
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, `\%02X`, ch)
		}
	}
	b.WriteString(`"`)
	return b.String()
}
func (c *ConstString) irValue() {}

// Param is a function parameter, addressable as a Value inside the
// function's entry block (codegen immediately spills it to an alloca,
// matching the teacher's reference semantics).
type Param struct {
	Name string
	Typ  Type
}

func (p *Param) Type() Type    { return p.Typ }
func (p *Param) Ident() string { return "%" + p.Name }
func (p *Param) irValue()      {}

// Instruction is both a node in a basic block and, when it produces a
// result, a Value other instructions can reference.
type Instruction struct {
	Name string // result register, empty for void/terminator instructions
	Op   string // mnemonic, e.g. "add", "load", "br"
	Typ  Type
	Args []Value // operand values, in textual order
	// Targets holds branch destinations for br/cbr; empty otherwise.
	Targets []*BasicBlock
	// Extra carries an opcode-specific annotation (e.g. an icmp
	// predicate, or a bitcast's destination type spelled out).
	Extra string
}

func (i *Instruction) Type() Type { return i.Typ }
func (i *Instruction) Ident() string {
	if i.Name == "" {
		return ""
	}
	return "%" + i.Name
}
func (i *Instruction) irValue() {}

// IsTerminator reports whether this instruction ends a basic block.
func (i *Instruction) IsTerminator() bool {
	switch i.Op {
	case "br", "cbr", "ret", "ret_void":
		return true
	default:
		return false
	}
}
