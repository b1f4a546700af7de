package ir

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BuildID tags a module with a unique identifier, printed as a header
// comment in its textual dump. It has no semantic effect; it exists so
// two debug/ir.ll dumps from the same source can be told apart when a
// file is compiled more than once (e.g. once directly, once again as
// the target of an import from another unit).
func (m *Module) BuildID() string {
	if m.buildID == "" {
		m.buildID = uuid.NewString()
	}
	return m.buildID
}

// String renders the module as readable, LLVM-flavored textual IR. It
// is meant for the --debug ir.ll dump, not for consumption by an
// assembler.
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; ModuleID = %q\n; build = %s\n", m.Name, m.BuildID())

	for _, g := range m.Globals {
		linkage := "internal"
		kind := "global"
		if g.Constant {
			kind = "constant"
		}
		fmt.Fprintf(&b, "%s = %s %s %s %s\n", g.Ident(), linkage, kind, g.Elem.String(), g.Initializer.Ident())
	}
	if len(m.Globals) > 0 {
		b.WriteString("\n")
	}

	for i, fn := range m.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		fn.writeTo(&b)
	}
	return b.String()
}

func (f *Function) writeTo(b *strings.Builder) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %s", p.Typ.String(), p.Ident())
	}
	if f.Variadic {
		params = append(params, "...")
	}

	if f.IsDeclaration() {
		fmt.Fprintf(b, "declare %s @%s(%s)\n", f.ReturnType.String(), f.Name, strings.Join(params, ", "))
		return
	}

	fmt.Fprintf(b, "define %s @%s(%s) {\n", f.ReturnType.String(), f.Name, strings.Join(params, ", "))
	for _, blk := range f.Blocks {
		blk.writeTo(b)
	}
	b.WriteString("}\n")
}

func (blk *BasicBlock) writeTo(b *strings.Builder) {
	fmt.Fprintf(b, "%s:\n", blk.Name)
	for _, instr := range blk.Instrs {
		b.WriteString("  ")
		instr.writeTo(b)
		b.WriteString("\n")
	}
}

func (i *Instruction) writeTo(b *strings.Builder) {
	switch i.Op {
	case "br":
		fmt.Fprintf(b, "br label %%%s", i.Targets[0].Name)
	case "cbr":
		fmt.Fprintf(b, "cbr %s %s, label %%%s, label %%%s", i.Args[0].Type().String(), i.Args[0].Ident(), i.Targets[0].Name, i.Targets[1].Name)
	case "ret":
		fmt.Fprintf(b, "ret %s %s", i.Args[0].Type().String(), i.Args[0].Ident())
	case "ret_void":
		b.WriteString("ret void")
	case "alloca":
		fmt.Fprintf(b, "%s = alloca %s", i.Ident(), i.Extra)
	case "load":
		fmt.Fprintf(b, "%s = load %s, %s %s", i.Ident(), i.Typ.String(), i.Args[0].Type().String(), i.Args[0].Ident())
	case "store":
		fmt.Fprintf(b, "store %s %s, %s %s", i.Args[0].Type().String(), i.Args[0].Ident(), i.Args[1].Type().String(), i.Args[1].Ident())
	case "icmp", "fcmp":
		fmt.Fprintf(b, "%s = %s %s %s %s, %s", i.Ident(), i.Op, i.Extra, i.Args[0].Type().String(), i.Args[0].Ident(), i.Args[1].Ident())
	case "sitofp":
		fmt.Fprintf(b, "%s = sitofp %s %s to float", i.Ident(), i.Args[0].Type().String(), i.Args[0].Ident())
	case "bitcast":
		fmt.Fprintf(b, "%s = bitcast %s %s to %s", i.Ident(), i.Args[0].Type().String(), i.Args[0].Ident(), i.Extra)
	case "gep":
		fmt.Fprintf(b, "%s = getelementptr %s, %s %s, i32 0, i32 0", i.Ident(), i.Args[0].Type().String(), i.Args[0].Type().String(), i.Args[0].Ident())
	case "call":
		fn := i.Args[0].(*Function)
		args := make([]string, 0, len(i.Args)-1)
		for _, a := range i.Args[1:] {
			args = append(args, fmt.Sprintf("%s %s", a.Type().String(), a.Ident()))
		}
		prefix := ""
		if i.Ident() != "" {
			prefix = i.Ident() + " = "
		}
		fmt.Fprintf(b, "%scall %s @%s(%s)", prefix, i.Typ.String(), fn.Name, strings.Join(args, ", "))
	default:
		args := make([]string, len(i.Args))
		for idx, a := range i.Args {
			args[idx] = a.Ident()
		}
		fmt.Fprintf(b, "%s = %s %s %s", i.Ident(), i.Op, i.Typ.String(), strings.Join(args, ", "))
	}
}
