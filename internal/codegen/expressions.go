package codegen

import (
	"strings"

	"github.com/noahgarrett/limec/internal/ast"
	"github.com/noahgarrett/limec/internal/ir"
)

// promote applies symmetric int-to-float promotion: if either operand is
// a float, the other is converted with sitofp so both arithmetic
// operands share a type. Returns the (possibly converted) pair and
// whether the operation should proceed on the float side.
func (c *Compiler) promote(lhs, rhs ir.Value) (ir.Value, ir.Value, bool) {
	lFloat, rFloat := ir.IsFloat(lhs.Type()), ir.IsFloat(rhs.Type())
	switch {
	case lFloat && rFloat:
		return lhs, rhs, true
	case lFloat && !rFloat:
		return lhs, c.builder.SIToFP(rhs), true
	case !lFloat && rFloat:
		return c.builder.SIToFP(lhs), rhs, true
	default:
		return lhs, rhs, false
	}
}

// resolveValue lowers an expression to its IR value and type. Returns
// (nil, nil) if an error was recorded; callers should bail out rather
// than try to keep emitting instructions over a missing operand.
func (c *Compiler) resolveValue(expr ast.Expression) (ir.Value, ir.Type) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		v := &ir.ConstInt{Val: node.Value, Typ: ir.I32}
		return v, ir.I32
	case *ast.FloatLiteral:
		v := &ir.ConstFloat{Val: node.Value}
		return v, ir.Float32
	case *ast.BooleanLiteral:
		return ir.ConstBool(node.Value), ir.I1
	case *ast.StringLiteral:
		return c.resolveString(node)
	case *ast.IdentifierLiteral:
		return c.resolveIdentifier(node)
	case *ast.InfixExpression:
		return c.resolveInfix(node)
	case *ast.PrefixExpression:
		return c.resolvePrefix(node)
	case *ast.PostfixExpression:
		return c.resolvePostfix(node)
	case *ast.CallExpression:
		return c.resolveCall(node)
	default:
		c.errorf("codegen: unsupported expression %T", expr)
		return nil, nil
	}
}

// resolveString interns the literal as a module-level constant global.
// The reference compiler's escape handling replaces each `\n` two-
// character source sequence with a real newline byte followed by a NUL,
// then appends one more NUL to terminate the whole constant — a quirk
// that truncates a C string at its first embedded newline, which Lime
// keeps rather than silently correcting.
func (c *Compiler) resolveString(node *ast.StringLiteral) (ir.Value, ir.Type) {
	processed := strings.ReplaceAll(node.Value, `\n`, "\n\x00")
	g := c.Module.InternString(processed)
	return g, g.Elem
}

func (c *Compiler) resolveIdentifier(node *ast.IdentifierLiteral) (ir.Value, ir.Type) {
	binding, ok := c.env.Lookup(node.Value)
	if !ok {
		c.errorf("identifier not declared: '%s'", node.Value)
		return nil, nil
	}
	if binding.IsSlot {
		return c.builder.Load(binding.Value, binding.Type), binding.Type
	}
	return binding.Value, binding.Type
}

func (c *Compiler) resolveInfix(node *ast.InfixExpression) (ir.Value, ir.Type) {
	if node.Operator == "^" {
		c.errorf("operator '^' is not implemented")
		return nil, nil
	}

	left, _ := c.resolveValue(node.Left)
	right, _ := c.resolveValue(node.Right)
	if left == nil || right == nil {
		return nil, nil
	}

	pl, pr, isFloat := c.promote(left, right)
	if isFloat {
		switch node.Operator {
		case "+":
			return c.builder.FAdd(pl, pr), ir.Float32
		case "-":
			return c.builder.FSub(pl, pr), ir.Float32
		case "*":
			return c.builder.FMul(pl, pr), ir.Float32
		case "/":
			return c.builder.FDiv(pl, pr), ir.Float32
		case "%":
			return c.builder.FRem(pl, pr), ir.Float32
		case "<":
			return c.builder.FCmp("olt", pl, pr), ir.I1
		case ">":
			return c.builder.FCmp("ogt", pl, pr), ir.I1
		case "<=":
			return c.builder.FCmp("ole", pl, pr), ir.I1
		case ">=":
			return c.builder.FCmp("oge", pl, pr), ir.I1
		case "==":
			return c.builder.FCmp("oeq", pl, pr), ir.I1
		case "!=":
			return c.builder.FCmp("one", pl, pr), ir.I1
		default:
			c.errorf("unsupported operator %q on float operands", node.Operator)
			return nil, nil
		}
	}

	switch node.Operator {
	case "+":
		return c.builder.Add(pl, pr), ir.I32
	case "-":
		return c.builder.Sub(pl, pr), ir.I32
	case "*":
		return c.builder.Mul(pl, pr), ir.I32
	case "/":
		return c.builder.SDiv(pl, pr), ir.I32
	case "%":
		return c.builder.SRem(pl, pr), ir.I32
	case "<":
		return c.builder.ICmp("slt", pl, pr), ir.I1
	case ">":
		return c.builder.ICmp("sgt", pl, pr), ir.I1
	case "<=":
		return c.builder.ICmp("sle", pl, pr), ir.I1
	case ">=":
		return c.builder.ICmp("sge", pl, pr), ir.I1
	case "==":
		return c.builder.ICmp("eq", pl, pr), ir.I1
	case "!=":
		return c.builder.ICmp("ne", pl, pr), ir.I1
	default:
		c.errorf("unsupported operator %q on integer operands", node.Operator)
		return nil, nil
	}
}

func (c *Compiler) resolvePrefix(node *ast.PrefixExpression) (ir.Value, ir.Type) {
	right, rightType := c.resolveValue(node.Right)
	if right == nil {
		return nil, nil
	}

	switch node.Operator {
	case "-":
		if ir.IsFloat(rightType) {
			return c.builder.FNeg(right), ir.Float32
		}
		return c.builder.Neg(right), ir.I32
	case "!":
		// The reference silently returns a constant zero for a float
		// operand here; Lime reports it instead of emitting a value of
		// the wrong type.
		if ir.IsFloat(rightType) {
			c.errorf("'!' requires an integer or boolean operand, not a float")
			return nil, nil
		}
		return c.builder.Not(right), ir.I1
	default:
		c.errorf("unsupported prefix operator %q", node.Operator)
		return nil, nil
	}
}

func (c *Compiler) resolvePostfix(node *ast.PostfixExpression) (ir.Value, ir.Type) {
	ident, ok := node.Left.(*ast.IdentifierLiteral)
	if !ok {
		c.errorf("postfix operator %q requires an identifier operand", node.Operator)
		return nil, nil
	}

	binding, ok := c.env.Lookup(ident.Value)
	if !ok {
		c.errorf("postfix operator used on undeclared identifier: '%s'", ident.Value)
		return nil, nil
	}

	current := c.builder.Load(binding.Value, binding.Type)

	var updated ir.Value
	if ir.IsFloat(binding.Type) {
		one := &ir.ConstFloat{Val: 1}
		if node.Operator == "++" {
			updated = c.builder.FAdd(current, one)
		} else {
			updated = c.builder.FSub(current, one)
		}
	} else {
		one := &ir.ConstInt{Val: 1, Typ: ir.I32}
		if node.Operator == "++" {
			updated = c.builder.Add(current, one)
		} else {
			updated = c.builder.Sub(current, one)
		}
	}

	c.builder.Store(updated, binding.Value)
	return updated, binding.Type
}

func (c *Compiler) resolveCall(node *ast.CallExpression) (ir.Value, ir.Type) {
	name := node.Function.Value

	args := make([]ir.Value, 0, len(node.Arguments))
	argTypes := make([]ir.Type, 0, len(node.Arguments))
	for _, a := range node.Arguments {
		v, t := c.resolveValue(a)
		if v == nil {
			return nil, nil
		}
		args = append(args, v)
		argTypes = append(argTypes, t)
	}

	if name == "printf" {
		return c.compilePrintf(args, argTypes)
	}

	binding, ok := c.env.Lookup(name)
	if !ok {
		c.errorf("call to unknown function '%s'", name)
		return nil, nil
	}
	fn, ok := binding.Value.(*ir.Function)
	if !ok {
		c.errorf("'%s' is not callable", name)
		return nil, nil
	}

	return c.builder.Call(fn, args), fn.ReturnType
}
