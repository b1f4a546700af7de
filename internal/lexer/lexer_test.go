package lexer_test

import (
	"testing"

	"github.com/noahgarrett/limec/internal/lexer"
	"github.com/noahgarrett/limec/internal/token"
	"github.com/stretchr/testify/require"
)

func collect(src string) []token.Token {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestNextToken_Operators(t *testing.T) {
	src := `+ ++ += - -- -= -> * *= / /= ^ % < <= > >= = == ! != : ; , ( ) { }`
	toks := collect(src)

	want := []token.Kind{
		token.PLUS, token.PLUS_PLUS, token.PLUS_EQ,
		token.MINUS, token.MINUS_MINUS, token.MINUS_EQ, token.ARROW,
		token.ASTERISK, token.MUL_EQ,
		token.SLASH, token.DIV_EQ,
		token.CARET, token.MODULUS,
		token.LT, token.LT_EQ, token.GT, token.GT_EQ,
		token.EQ, token.EQ_EQ,
		token.BANG, token.NOT_EQ,
		token.COLON, token.SEMICOLON, token.COMMA,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.EOF,
	}

	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d: %q", i, toks[i].Literal)
	}
}

func TestNextToken_KeywordsAndTypes(t *testing.T) {
	src := "let fn return if else true false while break continue for import int float bool str void foo"
	toks := collect(src)

	want := []token.Kind{
		token.LET, token.FN, token.RETURN, token.IF, token.ELSE,
		token.TRUE, token.FALSE, token.WHILE, token.BREAK, token.CONTINUE,
		token.FOR, token.IMPORT,
		token.TYPE, token.TYPE, token.TYPE, token.TYPE, token.TYPE,
		token.IDENT,
		token.EOF,
	}

	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d: %q", i, toks[i].Literal)
	}
}

func TestNextToken_AltKeywords(t *testing.T) {
	src := "lit be rn bruh pause sus imposter wee yeet anothaone dab come"
	toks := collect(src)

	want := []token.Kind{
		token.LET, token.EQ, token.SEMICOLON, token.FN, token.RETURN,
		token.IF, token.ELSE, token.WHILE, token.BREAK, token.CONTINUE,
		token.FOR, token.IMPORT,
		token.EOF,
	}

	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d: %q", i, toks[i].Literal)
	}
}

func TestNextToken_AltKeywordArrowUnreachable(t *testing.T) {
	// "3--D" cannot be produced by the identifier scanner (it starts with
	// a digit); it lexes as INT "3" followed by MINUS_MINUS and IDENT "D".
	toks := collect("3--D")

	want := []token.Kind{token.INT, token.MINUS_MINUS, token.IDENT, token.EOF}
	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestNextToken_NumberAndString(t *testing.T) {
	toks := collect(`42 3.14 "hello\nworld"`)

	require.Equal(t, token.INT, toks[0].Kind)
	require.Equal(t, "42", toks[0].Literal)

	require.Equal(t, token.FLOAT, toks[1].Kind)
	require.Equal(t, "3.14", toks[1].Literal)

	require.Equal(t, token.STRING, toks[2].Kind)
	require.Equal(t, `hello\nworld`, toks[2].Literal)
}

func TestNextToken_MalformedNumberIsIllegal(t *testing.T) {
	l := lexer.New("1.2.3")
	tok := l.NextToken()
	require.Equal(t, token.ILLEGAL, tok.Kind)
	require.NotEmpty(t, l.Errors())
}

func TestNextToken_IllegalByte(t *testing.T) {
	toks := collect("@")
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Equal(t, "@", toks[0].Literal)
}

func TestNextToken_ColumnIsByteOffset(t *testing.T) {
	// "x" at byte offset 4 (0-indexed) in "let x"
	l := lexer.New("let x")
	first := l.NextToken()
	require.Equal(t, 0, first.Column)

	second := l.NextToken()
	require.Equal(t, 4, second.Column)
}

func TestNextToken_LineCounting(t *testing.T) {
	l := lexer.New("let\nfn")
	first := l.NextToken()
	require.Equal(t, 1, first.Line)

	second := l.NextToken()
	require.Equal(t, 2, second.Line)
}

func TestNextToken_EmptySourceYieldsEOF(t *testing.T) {
	toks := collect("")
	require.Len(t, toks, 1)
	require.Equal(t, token.EOF, toks[0].Kind)
}
