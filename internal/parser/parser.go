// Package parser implements Lime's Pratt (operator-precedence) parser:
// it pulls tokens from a lexer and builds an *ast.Program, accumulating
// errors as plain strings rather than panicking.
package parser

import (
	"fmt"
	"strconv"

	"github.com/noahgarrett/limec/internal/ast"
	"github.com/noahgarrett/limec/internal/lexer"
	"github.com/noahgarrett/limec/internal/token"
)

// Precedence levels, ascending.
const (
	LOWEST      int = iota
	EQUALS          // == !=
	LESSGREATER     // < > <= >=
	SUM             // + -
	PRODUCT         // * / %
	EXPONENT        // ^
	PREFIX          // unary - !
	CALL            // myFunc(...)
	INDEX           // ++ --
)

var precedences = map[token.Kind]int{
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.SLASH:       PRODUCT,
	token.ASTERISK:    PRODUCT,
	token.MODULUS:     PRODUCT,
	token.CARET:       EXPONENT,
	token.EQ_EQ:       EQUALS,
	token.NOT_EQ:      EQUALS,
	token.LT:          LESSGREATER,
	token.GT:          LESSGREATER,
	token.LT_EQ:       LESSGREATER,
	token.GT_EQ:       LESSGREATER,
	token.LPAREN:      CALL,
	token.PLUS_PLUS:   INDEX,
	token.MINUS_MINUS: INDEX,
}

// assignmentOperators are the kinds that make an IDENT-led statement an
// AssignStatement rather than an ExpressionStatement.
var assignmentOperators = map[token.Kind]bool{
	token.EQ:       true,
	token.PLUS_EQ:  true,
	token.MINUS_EQ: true,
	token.MUL_EQ:   true,
	token.DIV_EQ:   true,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a Pratt parser over a lexer.Lexer's token stream.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []string

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn
}

// New constructs a Parser over l and primes the current/peek tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Kind]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.INT:    p.parseIntegerLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.TRUE:   p.parseBoolean,
		token.FALSE:  p.parseBoolean,
		token.STRING: p.parseStringLiteral,
		token.LPAREN: p.parseGroupedExpression,
		token.MINUS:  p.parsePrefixExpression,
		token.BANG:   p.parsePrefixExpression,
	}

	p.infixParseFns = map[token.Kind]infixParseFn{
		token.PLUS:        p.parseInfixExpression,
		token.MINUS:       p.parseInfixExpression,
		token.SLASH:       p.parseInfixExpression,
		token.ASTERISK:    p.parseInfixExpression,
		token.CARET:       p.parseInfixExpression,
		token.MODULUS:     p.parseInfixExpression,
		token.EQ_EQ:       p.parseInfixExpression,
		token.NOT_EQ:      p.parseInfixExpression,
		token.LT:          p.parseInfixExpression,
		token.GT:          p.parseInfixExpression,
		token.LT_EQ:       p.parseInfixExpression,
		token.GT_EQ:       p.parseInfixExpression,
		token.LPAREN:      p.parseCallExpression,
		token.PLUS_PLUS:   p.parsePostfixExpression,
		token.MINUS_MINUS: p.parsePostfixExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the accumulated parse errors, in order.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekTokenIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) peekTokenIsAssignment() bool {
	return assignmentOperators[p.peekToken.Kind]
}

func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekTokenIs(k) {
		p.nextToken()
		return true
	}
	p.peekError(k)
	return false
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekError(k token.Kind) {
	p.errors = append(p.errors, fmt.Sprintf(
		"Expected next token to be %s, got %s instead.", k, p.peekToken.Kind))
}

func (p *Parser) noPrefixParseFnError(k token.Kind) {
	p.errors = append(p.errors, fmt.Sprintf("No Prefix Parse Function for %s found", k))
}

// ParseProgram is the parser's entry point: it consumes the whole token
// stream and returns the resulting *ast.Program. Parse errors are
// accumulated, not raised; inspect Errors() afterwards.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// ---- Statements ----

func (p *Parser) parseStatement() ast.Statement {
	if p.curTokenIs(token.IDENT) && p.peekTokenIsAssignment() {
		return p.parseAssignStatement()
	}

	switch p.curToken.Kind {
	case token.LET:
		return p.parseLetStatement()
	case token.FN:
		return p.parseFunctionStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.IdentifierLiteral{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.TYPE) {
		return nil
	}
	stmt.ValueType = p.curToken.Literal

	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)

	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseFunctionStatement() *ast.FunctionStatement {
	stmt := &ast.FunctionStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.IdentifierLiteral{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	stmt.ReturnType = p.curToken.Literal

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseFunctionParameters() []*ast.FunctionParameter {
	var params []*ast.FunctionParameter

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	first := &ast.FunctionParameter{Token: p.curToken, Name: p.curToken.Literal}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	first.ValueType = p.curToken.Literal
	params = append(params, first)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()

		param := &ast.FunctionParameter{Token: p.curToken, Name: p.curToken.Literal}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		param.ValueType = p.curToken.Literal
		params = append(params, param)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	ident := &ast.IdentifierLiteral{Token: p.curToken, Value: p.curToken.Literal}

	p.nextToken() // move onto the operator
	stmt := &ast.AssignStatement{Token: p.curToken, Ident: ident, Operator: p.curToken.Literal}

	p.nextToken() // move onto the rhs
	stmt.RightValue = p.parseExpression(LOWEST)

	p.nextToken()

	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.LET) {
		return nil
	}
	stmt.VarDeclaration = p.parseLetStatement()

	p.nextToken() // move past the `;` that ends the declaration

	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	p.nextToken()

	stmt.Action = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseImportStatement() *ast.ImportStatement {
	tok := p.curToken
	if !p.expectPeek(token.STRING) {
		return nil
	}

	stmt := &ast.ImportStatement{Token: tok, FilePath: p.curToken.Literal}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// parseIfStatement parses `if cond { ... } (else { ... })?` — this is
// dispatched from parseStatement directly (IF is not a prefix
// expression parser in Lime's grammar, matching the reference).
func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Alternative = p.parseBlockStatement()
	}

	return stmt
}

// ---- Expressions ----

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Kind]
	if !ok {
		p.noPrefixParseFnError(p.curToken.Kind)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Kind]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.IdentifierLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	val, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("Could not parse %q as an integer.", p.curToken.Literal))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: val}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	val, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("Could not parse %q as a float.", p.curToken.Literal))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: val}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}

	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)

	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.curToken, Left: left, Operator: p.curToken.Literal}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)

	return expr
}

func (p *Parser) parsePostfixExpression(left ast.Expression) ast.Expression {
	return &ast.PostfixExpression{Token: p.curToken, Left: left, Operator: p.curToken.Literal}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	ident, ok := function.(*ast.IdentifierLiteral)
	if !ok {
		p.errors = append(p.errors, "call expression target must be an identifier")
		return nil
	}
	expr := &ast.CallExpression{Token: p.curToken, Function: ident}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	var list []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}
