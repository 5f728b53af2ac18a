package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token
	}{
		{"", []token{{kind: tokenEOF, pos: 1}}},
		{" \t ", []token{{kind: tokenEOF, pos: 4}}},
		{"0", []token{
			{kind: tokenNum, text: "0", num: 0, pos: 1},
			{kind: tokenEOF, pos: 2},
		}},
		{"3.25", []token{
			{kind: tokenNum, text: "3.25", num: 3.25, pos: 1},
			{kind: tokenEOF, pos: 5},
		}},
		{".5", []token{
			{kind: tokenNum, text: ".5", num: 0.5, pos: 1},
			{kind: tokenEOF, pos: 3},
		}},
		{"1.", []token{
			{kind: tokenNum, text: "1.", num: 1, pos: 1},
			{kind: tokenEOF, pos: 3},
		}},
		{"12 34", []token{
			{kind: tokenNum, text: "12", num: 12, pos: 1},
			{kind: tokenNum, text: "34", num: 34, pos: 4},
			{kind: tokenEOF, pos: 6},
		}},
		{"pi", []token{
			{kind: tokenIdent, text: "pi", pos: 1},
			{kind: tokenEOF, pos: 3},
		}},
		{"PI", []token{
			{kind: tokenIdent, text: "pi", pos: 1},
			{kind: tokenEOF, pos: 3},
		}},
		{"Sqrt_2x", []token{
			{kind: tokenIdent, text: "sqrt_2x", pos: 1},
			{kind: tokenEOF, pos: 8},
		}},
		{"_x", []token{
			{kind: tokenIdent, text: "_x", pos: 1},
			{kind: tokenEOF, pos: 3},
		}},
		// an identifier swallows its numeric tail
		{"pi2", []token{
			{kind: tokenIdent, text: "pi2", pos: 1},
			{kind: tokenEOF, pos: 4},
		}},
		{"2*pi", []token{
			{kind: tokenNum, text: "2", num: 2, pos: 1},
			{kind: tokenOp, text: "*", sym: '*', pos: 2},
			{kind: tokenIdent, text: "pi", pos: 3},
			{kind: tokenEOF, pos: 5},
		}},
		{"max(1,2)", []token{
			{kind: tokenIdent, text: "max", pos: 1},
			{kind: tokenOpen, text: "(", sym: '(', pos: 4},
			{kind: tokenNum, text: "1", num: 1, pos: 5},
			{kind: tokenSep, text: ",", sym: ',', pos: 6},
			{kind: tokenNum, text: "2", num: 2, pos: 7},
			{kind: tokenClose, text: ")", sym: ')', pos: 8},
			{kind: tokenEOF, pos: 9},
		}},
		{"1 - -2", []token{
			{kind: tokenNum, text: "1", num: 1, pos: 1},
			{kind: tokenOp, text: "-", sym: '-', pos: 3},
			{kind: tokenOp, text: "-", sym: '-', pos: 5},
			{kind: tokenNum, text: "2", num: 2, pos: 6},
			{kind: tokenEOF, pos: 7},
		}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := tokenize(c.src, Default())
			require.NoError(t, err)
			require.Equal(t, c.tokens, toks)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		col  int
	}{
		{"1.2.3", "number", 1},
		{"..", "number", 1},
		{".", "number", 1},
		{"1@", "", 2},
		{"#1", "", 1},
		{"1 + $", "", 5},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := tokenize(c.src, Default())
			require.Error(t, err)
			var lerr *LexError
			require.True(t, errors.As(err, &lerr), "want *LexError, got %T", err)
			require.Equal(t, c.kind, lerr.Kind)
			require.Equal(t, c.col, lerr.Pos())
		})
	}
}

// The registry, not the lexer, decides which runes are operators.
func TestTokenizeRegistryOperators(t *testing.T) {
	reg, err := NewRegistry(nil, nil, []Op{{
		Symbol:     '!',
		PrefixPrec: 25,
		EvalPrefix: func(v float64) (float64, error) { return -v, nil },
	}})
	require.NoError(t, err)

	toks, err := tokenize("!1", reg)
	require.NoError(t, err)
	require.Equal(t, tokenOp, toks[0].kind)
	require.Equal(t, '!', toks[0].sym)

	// '*' is an operator only in the default registry.
	_, err = tokenize("1*2", reg)
	var lerr *LexError
	require.True(t, errors.As(err, &lerr), "want *LexError, got %T", err)
	require.Equal(t, 2, lerr.Pos())
}
