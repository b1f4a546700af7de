package ir

// BasicBlock is a straight-line sequence of instructions ending in at
// most one terminator (br, cbr, ret, ret_void).
type BasicBlock struct {
	Name     string
	Instrs   []*Instruction
	Function *Function
}

// Terminator returns the block's terminating instruction, or nil if
// the block has not been closed yet.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instrs) == 0 {
		return nil
	}
	last := b.Instrs[len(b.Instrs)-1]
	if last.IsTerminator() {
		return last
	}
	return nil
}

// IsTerminated reports whether the block already ends in a terminator.
// Codegen consults this before emitting an implicit trailing ret/ret
// void, which the original compiler being ported from does not do and
// which results in LLVM-illegal double terminators.
func (b *BasicBlock) IsTerminated() bool {
	return b.Terminator() != nil
}

func (b *BasicBlock) append(instr *Instruction) *Instruction {
	b.Instrs = append(b.Instrs, instr)
	return instr
}
