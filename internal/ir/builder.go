package ir

import "fmt"

// Builder emits instructions into a single basic block at a time. It
// mirrors llvmlite's IRBuilder: callers reposition it with SetBlock
// before emitting into a new block (e.g. when opening a loop body).
type Builder struct {
	block *Function
	cur   *BasicBlock
}

// NewBuilder creates a Builder with no insertion point set; call
// SetBlock before emitting.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetBlock repositions the builder's insertion point to b.
func (b *Builder) SetBlock(block *BasicBlock) {
	b.cur = block
	b.block = block.Function
}

// Block returns the builder's current insertion point.
func (b *Builder) Block() *BasicBlock { return b.cur }

// Terminated reports whether the current block already ends in a
// terminator, so callers can skip emitting a redundant one.
func (b *Builder) Terminated() bool {
	return b.cur != nil && b.cur.IsTerminated()
}

func (b *Builder) emit(op string, typ Type, args ...Value) *Instruction {
	instr := &Instruction{Op: op, Typ: typ, Args: args}
	if _, ok := typ.(*VoidType); !ok {
		instr.Name = b.block.nextTemp()
	}
	b.cur.append(instr)
	return instr
}

// Alloca reserves stack space for a value of typ, returning a pointer
// to it.
func (b *Builder) Alloca(typ Type, name string) *Instruction {
	instr := &Instruction{Op: "alloca", Typ: &PointerType{Elem: typ}, Extra: typ.String()}
	if name != "" {
		instr.Name = b.block.uniqueName(name)
	} else {
		instr.Name = b.block.nextTemp()
	}
	b.cur.append(instr)
	return instr
}

// Load reads the value pointed to by ptr.
func (b *Builder) Load(ptr Value, elemType Type) *Instruction {
	return b.emit("load", elemType, ptr)
}

// Store writes val to the location pointed to by ptr.
func (b *Builder) Store(val, ptr Value) *Instruction {
	return b.emit("store", Void, val, ptr)
}

func (b *Builder) binOp(op string, lhs, rhs Value) *Instruction {
	return b.emit(op, lhs.Type(), lhs, rhs)
}

// Integer arithmetic.
func (b *Builder) Add(lhs, rhs Value) *Instruction  { return b.binOp("add", lhs, rhs) }
func (b *Builder) Sub(lhs, rhs Value) *Instruction  { return b.binOp("sub", lhs, rhs) }
func (b *Builder) Mul(lhs, rhs Value) *Instruction  { return b.binOp("mul", lhs, rhs) }
func (b *Builder) SDiv(lhs, rhs Value) *Instruction { return b.binOp("sdiv", lhs, rhs) }
func (b *Builder) SRem(lhs, rhs Value) *Instruction { return b.binOp("srem", lhs, rhs) }

// Float arithmetic.
func (b *Builder) FAdd(lhs, rhs Value) *Instruction { return b.binOp("fadd", lhs, rhs) }
func (b *Builder) FSub(lhs, rhs Value) *Instruction { return b.binOp("fsub", lhs, rhs) }
func (b *Builder) FMul(lhs, rhs Value) *Instruction { return b.binOp("fmul", lhs, rhs) }
func (b *Builder) FDiv(lhs, rhs Value) *Instruction { return b.binOp("fdiv", lhs, rhs) }
func (b *Builder) FRem(lhs, rhs Value) *Instruction { return b.binOp("frem", lhs, rhs) }

// ICmp emits a signed integer comparison with the given predicate
// ("eq", "ne", "sgt", "sge", "slt", "sle"), yielding an i1.
func (b *Builder) ICmp(pred string, lhs, rhs Value) *Instruction {
	instr := b.emit("icmp", I1, lhs, rhs)
	instr.Extra = pred
	return instr
}

// FCmp emits an ordered float comparison with the given predicate
// ("oeq", "one", "ogt", "oge", "olt", "ole"), yielding an i1.
func (b *Builder) FCmp(pred string, lhs, rhs Value) *Instruction {
	instr := b.emit("fcmp", I1, lhs, rhs)
	instr.Extra = pred
	return instr
}

// SIToFP converts an integer value to float, used to promote an
// operand when one side of a binary expression is a float.
func (b *Builder) SIToFP(val Value) *Instruction {
	return b.emit("sitofp", Float32, val)
}

// Not emits a boolean complement (i1 xor 1).
func (b *Builder) Not(val Value) *Instruction {
	return b.emit("not", I1, val)
}

// Neg emits an integer two's-complement negation (0 - val).
func (b *Builder) Neg(val Value) *Instruction {
	return b.emit("neg", val.Type(), val)
}

// FNeg emits a float negation (val * -1.0).
func (b *Builder) FNeg(val Value) *Instruction {
	return b.emit("fneg", Float32, val)
}

// BitCast reinterprets val as to, used to cast an interned string
// global's pointer-to-array down to i8* for printf.
func (b *Builder) BitCast(val Value, to Type) *Instruction {
	instr := b.emit("bitcast", to, val)
	instr.Extra = to.String()
	return instr
}

// Br emits an unconditional branch, terminating the current block.
func (b *Builder) Br(target *BasicBlock) *Instruction {
	instr := &Instruction{Op: "br", Typ: Void, Targets: []*BasicBlock{target}}
	b.cur.append(instr)
	return instr
}

// CondBr emits a conditional branch, terminating the current block.
func (b *Builder) CondBr(cond Value, then, els *BasicBlock) *Instruction {
	instr := &Instruction{Op: "cbr", Typ: Void, Args: []Value{cond}, Targets: []*BasicBlock{then, els}}
	b.cur.append(instr)
	return instr
}

// Ret emits a value-returning terminator.
func (b *Builder) Ret(val Value) *Instruction {
	instr := &Instruction{Op: "ret", Typ: Void, Args: []Value{val}}
	b.cur.append(instr)
	return instr
}

// RetVoid emits a void-returning terminator.
func (b *Builder) RetVoid() *Instruction {
	instr := &Instruction{Op: "ret_void", Typ: Void}
	b.cur.append(instr)
	return instr
}

// Call emits a call to fn with args.
func (b *Builder) Call(fn *Function, args []Value) *Instruction {
	return b.emit("call", fn.ReturnType, append([]Value{fn}, args...)...)
}

// GEPToFirstElem computes a pointer to element 0 of the array global g,
// the idiom used to obtain an i8* from a `[N x i8]` string constant
// before bitcasting it for printf.
func (b *Builder) GEPToFirstElem(g *GlobalVariable) *Instruction {
	elemType, ok := g.Elem.(*ArrayType)
	if !ok {
		panic(fmt.Sprintf("ir: GEPToFirstElem on non-array global %q", g.Name))
	}
	instr := b.emit("gep", &PointerType{Elem: elemType.Elem}, g)
	instr.Extra = "0,0"
	return instr
}
