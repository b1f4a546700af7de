// Package codegen lowers a parsed Lime program into the module/ir
// package's SSA intermediate representation: it registers the
// language's builtins, walks the AST one statement at a time, and
// accumulates a flat list of error strings rather than panicking,
// mirroring how the lexer and parser packages report failure.
package codegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/noahgarrett/limec/internal/ast"
	"github.com/noahgarrett/limec/internal/env"
	"github.com/noahgarrett/limec/internal/ir"
	"github.com/noahgarrett/limec/internal/lexer"
	"github.com/noahgarrett/limec/internal/parser"
)

// Compiler walks a *ast.Program and emits a *ir.Module. Create one with
// New, call Compile once, then inspect Errors.
type Compiler struct {
	Module  *ir.Module
	builder *ir.Builder
	env     *env.Environment

	errors []string

	breakTargets    []*ir.BasicBlock
	continueTargets []*ir.BasicBlock

	importedFiles map[string]bool

	// currentFile names the source file being compiled, used only to
	// resolve relative import paths; empty when compiling a program
	// that was not read from disk (e.g. in tests).
	currentFile string
}

// New creates a Compiler with an empty module named moduleName and
// registers the language's builtins into its global environment.
func New(moduleName string) *Compiler {
	c := &Compiler{
		Module:        ir.NewModule(moduleName),
		env:           env.New(),
		importedFiles: make(map[string]bool),
	}
	c.registerBuiltins()
	return c
}

// Errors returns the accumulated codegen errors, in order.
func (c *Compiler) Errors() []string {
	return c.errors
}

func (c *Compiler) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// typeFor maps Lime's surface type keywords onto IR types.
func typeFor(name string) (ir.Type, bool) {
	switch name {
	case "int":
		return ir.I32, true
	case "float":
		return ir.Float32, true
	case "bool":
		return ir.I1, true
	case "void":
		return ir.Void, true
	case "str":
		return ir.I8Ptr, true
	default:
		return nil, false
	}
}

// registerBuiltins binds `printf` and the `true`/`false` constants into
// the root environment, exactly as the reference compiler's startup
// step does. The true/false bindings are never actually reached
// through identifier resolution (the lexer produces TRUE/FALSE tokens
// for `true`/`false`, which the parser turns into BooleanLiteral nodes,
// not identifiers), but the
// reference registers them unconditionally and Lime preserves that.
func (c *Compiler) registerBuiltins() {
	printfFn := c.Module.NewFunction("printf", []*ir.Param{{Name: "format", Typ: ir.I8Ptr}}, ir.I32, true)
	c.env.Define("printf", env.Binding{Value: printfFn, Type: printfFn.Type()})

	c.env.Define("true", env.Binding{Value: ir.ConstBool(true), Type: ir.I1})
	c.env.Define("false", env.Binding{Value: ir.ConstBool(false), Type: ir.I1})
}

// Compile lowers every statement of program into the module in order.
func (c *Compiler) Compile(program *ast.Program) {
	for _, stmt := range program.Statements {
		c.compileStatement(stmt)
	}
}

// CompileFile is the entry point used by the driver: it records
// sourcePath so relative imports resolve against its directory before
// compiling program.
func (c *Compiler) CompileFile(sourcePath string, program *ast.Program) {
	c.currentFile = sourcePath
	c.Compile(program)
}

func (c *Compiler) compileStatement(stmt ast.Statement) {
	switch node := stmt.(type) {
	case *ast.LetStatement:
		c.compileLetStatement(node)
	case *ast.FunctionStatement:
		c.compileFunctionStatement(node)
	case *ast.BlockStatement:
		c.compileBlockStatement(node)
	case *ast.ReturnStatement:
		c.compileReturnStatement(node)
	case *ast.AssignStatement:
		c.compileAssignStatement(node)
	case *ast.IfStatement:
		c.compileIfStatement(node)
	case *ast.WhileStatement:
		c.compileWhileStatement(node)
	case *ast.BreakStatement:
		c.compileBreakStatement(node)
	case *ast.ContinueStatement:
		c.compileContinueStatement(node)
	case *ast.ForStatement:
		c.compileForStatement(node)
	case *ast.ImportStatement:
		c.compileImportStatement(node)
	case *ast.ExpressionStatement:
		c.resolveValue(node.Expr)
	default:
		c.errorf("codegen: unsupported statement %T", stmt)
	}
}

func (c *Compiler) compileImportStatement(stmt *ast.ImportStatement) {
	path := stmt.FilePath
	if c.currentFile != "" {
		path = filepath.Join(filepath.Dir(c.currentFile), stmt.FilePath)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		c.errorf("import %q: %s", stmt.FilePath, err)
		return
	}

	if c.importedFiles[abs] {
		fmt.Fprintf(os.Stderr, "warning: %q already imported, skipping\n", stmt.FilePath)
		return
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		c.errorf("import %q: %s", stmt.FilePath, err)
		return
	}

	p := parser.New(lexer.New(string(src)))
	importedProgram := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			c.errorf("in import %q: %s", stmt.FilePath, e)
		}
		return
	}

	c.importedFiles[abs] = true

	prevFile := c.currentFile
	c.currentFile = abs
	c.Compile(importedProgram)
	c.currentFile = prevFile
}
