package parser_test

import (
	"fmt"
	"testing"

	"github.com/noahgarrett/limec/internal/ast"
	"github.com/noahgarrett/limec/internal/lexer"
	"github.com/noahgarrett/limec/internal/parser"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	return prog
}

func TestParseLetStatement(t *testing.T) {
	prog := parseProgram(t, `let x: int = 5;`)
	require.Len(t, prog.Statements, 1)

	stmt, ok := prog.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	require.Equal(t, "x", stmt.Name.Value)
	require.Equal(t, "int", stmt.ValueType)

	val, ok := stmt.Value.(*ast.IntegerLiteral)
	require.True(t, ok)
	require.EqualValues(t, 5, val.Value)
}

func TestParseFunctionStatement(t *testing.T) {
	prog := parseProgram(t, `fn add(a: int, b: int) -> int { return a + b; }`)
	require.Len(t, prog.Statements, 1)

	fn, ok := prog.Statements[0].(*ast.FunctionStatement)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Value)
	require.Equal(t, "int", fn.ReturnType)
	require.Len(t, fn.Parameters, 2)
	require.Equal(t, "a", fn.Parameters[0].Name)
	require.Equal(t, "int", fn.Parameters[0].ValueType)
	require.Equal(t, "b", fn.Parameters[1].Name)
	require.Len(t, fn.Body.Statements, 1)
}

func TestParseFunctionStatement_NoParameters(t *testing.T) {
	prog := parseProgram(t, `fn main() -> void { x = 1; }`)
	fn := prog.Statements[0].(*ast.FunctionStatement)
	require.Empty(t, fn.Parameters)
}

func TestParseIfElseStatement(t *testing.T) {
	prog := parseProgram(t, `if x < y { return x; } else { return y; }`)
	require.Len(t, prog.Statements, 1)

	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.Condition)
	require.Len(t, stmt.Consequence.Statements, 1)
	require.NotNil(t, stmt.Alternative)
	require.Len(t, stmt.Alternative.Statements, 1)
}

func TestParseIfStatement_NoElse(t *testing.T) {
	prog := parseProgram(t, `if x { return x; }`)
	stmt := prog.Statements[0].(*ast.IfStatement)
	require.Nil(t, stmt.Alternative)
}

func TestParseWhileStatement(t *testing.T) {
	prog := parseProgram(t, `while x > 0 { x--; }`)
	stmt, ok := prog.Statements[0].(*ast.WhileStatement)
	require.True(t, ok)
	require.Len(t, stmt.Body.Statements, 1)

	inner, ok := stmt.Body.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	post, ok := inner.Expr.(*ast.PostfixExpression)
	require.True(t, ok)
	require.Equal(t, "--", post.Operator)
}

func TestParseBreakAndContinue(t *testing.T) {
	prog := parseProgram(t, `while true { break; continue; }`)
	stmt := prog.Statements[0].(*ast.WhileStatement)
	require.Len(t, stmt.Body.Statements, 2)

	_, ok := stmt.Body.Statements[0].(*ast.BreakStatement)
	require.True(t, ok)
	_, ok = stmt.Body.Statements[1].(*ast.ContinueStatement)
	require.True(t, ok)
}

func TestParseForStatement(t *testing.T) {
	prog := parseProgram(t, `for (let i: int = 0; i < 10; i++) { s += i; }`)
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	require.True(t, ok)

	require.Equal(t, "i", stmt.VarDeclaration.Name.Value)

	cond, ok := stmt.Condition.(*ast.InfixExpression)
	require.True(t, ok)
	require.Equal(t, "<", cond.Operator)

	action, ok := stmt.Action.(*ast.PostfixExpression)
	require.True(t, ok)
	require.Equal(t, "++", action.Operator)

	require.Len(t, stmt.Body.Statements, 1)
}

func TestParseAssignStatement_Operators(t *testing.T) {
	ops := []string{"=", "+=", "-=", "*=", "/="}
	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			prog := parseProgram(t, fmt.Sprintf("x %s 5;", op))
			stmt, ok := prog.Statements[0].(*ast.AssignStatement)
			require.True(t, ok)
			require.Equal(t, "x", stmt.Ident.Value)
			require.Equal(t, op, stmt.Operator)
		})
	}
}

func TestParseImportStatement(t *testing.T) {
	prog := parseProgram(t, `import "std.lime";`)
	stmt, ok := prog.Statements[0].(*ast.ImportStatement)
	require.True(t, ok)
	require.Equal(t, "std.lime", stmt.FilePath)
}

func TestParseReturnStatement(t *testing.T) {
	prog := parseProgram(t, `return 1 + 2;`)
	stmt, ok := prog.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	require.Equal(t, "(1 + 2)", stmt.ReturnValue.String())
}

func TestParseCallExpression(t *testing.T) {
	prog := parseProgram(t, `fact(n - 1);`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpression)
	require.True(t, ok)
	require.Equal(t, "fact", call.Function.Value)
	require.Len(t, call.Arguments, 1)
}

func TestParseCallExpression_NonIdentifierTargetIsError(t *testing.T) {
	p := parser.New(lexer.New(`(1 + 2)(3);`))
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c;", "(a + (b * c))"},
		{"a * b + c;", "((a * b) + c)"},
		{"a + b + c;", "((a + b) + c)"},
		{"a - b - c;", "((a - b) - c)"},
		{"a * b / c;", "((a * b) / c)"},
		{"a + b * c + d / e - f;", "(((a + (b * c)) + (d / e)) - f)"},
		{"a > b == c < d;", "((a > b) == (c < d))"},
		{"a + b == c + d;", "((a + b) == (c + d))"},
		{"2 ^ 3 + 1;", "((2 ^ 3) + 1)"},
		{"(a + b) * c;", "((a + b) * c)"},
		{"-a * b;", "((-a) * b)"},
		{"!isGreater;", "(!isGreater)"},
		{"a + fact(b, c) + d;", "((a + fact(b, c)) + d)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parseProgram(t, tt.input)
			require.Len(t, prog.Statements, 1)
			stmt := prog.Statements[0].(*ast.ExpressionStatement)
			require.Equal(t, tt.want, stmt.Expr.String())
		})
	}
}

func TestParseErrors_MissingToken(t *testing.T) {
	p := parser.New(lexer.New(`fn add(a: int, b: int -> int { return a; }`))
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

func TestParseErrors_NoPrefixParseFn(t *testing.T) {
	p := parser.New(lexer.New(`let x: int = ;`))
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

// Alt-keyword aliases parse identically to their canonical counterparts —
// the grammar only ever sees token kinds, never literal spellings.
func TestParseAltKeywords_Equivalence(t *testing.T) {
	canonical := parseProgram(t, `fn fact(n: int) -> int { if n <= 1 { return 1; } else { return n; } }`)

	altSrc := `bruh fact(n: int) -> int { sus n <= 1 { pause 1; } imposter { pause n; } }`
	alt := parseProgram(t, altSrc)

	require.Equal(t, canonical.String(), alt.String())
}
