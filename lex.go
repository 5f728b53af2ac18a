package calc

import (
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	kind tokenKind
	text string
	// num is the literal value of a tokenNum.
	num float64
	// sym is the rune of a tokenOp.
	sym rune
	// pos is the 1-based rune column at which the token begins.
	pos int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF marks the end of the token sequence.
	tokenEOF
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is a constant or function name, lowercased.
	tokenIdent
	// tokenOp is an operator symbol.
	tokenOp
	// tokenOpen and tokenClose are ( and ).
	tokenOpen
	tokenClose
	// tokenSep is the argument separator ,.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type lexer struct {
	src []rune
	pos int
	reg *Registry
}

// tokenize scans src left to right into a flat token sequence ending with an
// EOF token. The registry decides which runes are operator symbols;
// brackets, the comma, numbers, and identifiers are fixed syntax.
func tokenize(src string, reg *Registry) ([]token, error) {
	l := lexer{src: []rune(src), reg: reg}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	tok := token{pos: l.pos + 1}
	if l.pos >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	r := l.src[l.pos]
	switch {
	case '0' <= r && r <= '9', r == '.':
		return l.scanNum()
	case r == '_', unicode.IsLetter(r):
		return l.scanIdent(), nil
	case r == '(':
		tok.kind = tokenOpen
	case r == ')':
		tok.kind = tokenClose
	case r == ',':
		tok.kind = tokenSep
	case l.reg.IsOperator(r):
		tok.kind = tokenOp
	default:
		return tok, &LexError{Text: string(r), Col: tok.pos}
	}
	l.pos++
	tok.text = string(r)
	tok.sym = r
	return tok, nil
}

// scanNum consumes a maximal run of digits and decimal points. More than one
// point, or a run that is a lone point, is a malformed number.
func (l *lexer) scanNum() (token, error) {
	tok := token{kind: tokenNum, pos: l.pos + 1}
	start := l.pos
	dots := 0
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == '.' {
			dots++
		} else if r < '0' || r > '9' {
			break
		}
		l.pos++
	}
	tok.text = string(l.src[start:l.pos])
	v, err := strconv.ParseFloat(tok.text, 64)
	if dots > 1 || err != nil {
		return token{}, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	tok.num = v
	return tok, nil
}

// scanIdent consumes a maximal run of letters, digits, and underscores. The
// run is a single identifier no matter its tail, so pi2 is a name of its
// own, never pi followed by 2.
func (l *lexer) scanIdent() token {
	tok := token{kind: tokenIdent, pos: l.pos + 1}
	start := l.pos
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos++
	}
	tok.text = strings.ToLower(string(l.src[start:l.pos]))
	return tok
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text scanned for the offending token.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the 1-based rune column at which the token begins.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
