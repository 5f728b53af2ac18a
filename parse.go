package calc

// The grammar, in terms of registry-supplied binding powers:
//
//	Expr(min) = Atom { op[infix, bp >= min] Expr(bp or bp+1) }
//	Atom      = num | ident | ident '(' Args ')' | op[prefix, bp] Expr(bp) | '(' Expr(0) ')'
//	Args      = [ Expr(0) { ',' Expr(0) } ]

// Expr is a parsed expression. It is immutable; it may be evaluated any
// number of times, and every evaluation is independent.
type Expr struct {
	n   *node
	reg *Registry
}

// Parse parses an expression against the default builtins.
func Parse(src string) (*Expr, error) {
	return Default().Parse(src)
}

// Parse parses an expression against r's builtins.
func (r *Registry) Parse(src string) (*Expr, error) {
	toks, err := tokenize(src, r)
	if err != nil {
		return nil, err
	}
	n, err := parse(toks, r)
	if err != nil {
		return nil, err
	}
	return &Expr{n: n, reg: r}, nil
}

// String returns a fully grouped rendering of the parse tree.
func (e *Expr) String() string {
	return e.n.String()
}

type parser struct {
	toks []token
	pos  int
	reg  *Registry
}

// parse consumes the entire token sequence. Tokens left between the parsed
// expression and EOF are an error.
func parse(toks []token, reg *Registry) (*node, error) {
	p := parser{toks: toks, reg: reg}
	n, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &TrailingInputError{Col: tok.pos, Token: tok.text}
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) bump() token {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

// parseExpr parses one expression by precedence climbing, consuming infix
// operators whose binding power is at least minBP. Left-associative
// operators recurse with bp+1 so that equal powers group leftward;
// right-associative operators reuse bp so that they group rightward.
// The threshold is an int so that bp+1 cannot wrap for an operator
// registered at the top of the uint8 range.
func (p *parser) parseExpr(minBP int) (*node, error) {
	n, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp {
			return n, nil
		}
		bp, assoc, ok := p.reg.InfixBindingPower(tok.sym)
		if !ok || int(bp) < minBP {
			return n, nil
		}
		p.bump()
		next := int(bp)
		if assoc == AssocLeft {
			next = int(bp) + 1
		}
		rhs, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeInfix, sym: tok.sym, left: n, right: rhs}
	}
}

// parseAtom parses the leading operand of an expression: a literal, a
// constant reference, a function call, a prefix operator, or a
// parenthesized group.
func (p *parser) parseAtom() (*node, error) {
	tok := p.bump()
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, num: tok.num}, nil
	case tokenIdent:
		if p.peek().kind != tokenOpen {
			return &node{kind: nodeConst, name: tok.text}, nil
		}
		p.bump()
		args, err := p.parseArgs(tok.text)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: tok.text, args: args}, nil
	case tokenOp:
		bp, ok := p.reg.PrefixBindingPower(tok.sym)
		if !ok {
			return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
		}
		operand, err := p.parseExpr(int(bp))
		if err != nil {
			return nil, err
		}
		return &node{kind: nodePrefix, sym: tok.sym, left: operand}, nil
	case tokenOpen:
		n, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if end := p.bump(); end.kind != tokenClose {
			return nil, &UnclosedParenError{Col: end.pos}
		}
		return n, nil
	case tokenEOF:
		return nil, &UnexpectedEndError{Col: tok.pos}
	default:
		return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
	}
}

// parseArgs parses a call's argument list; the opening parenthesis has been
// consumed. An empty list is legal (arity is the evaluator's concern), but
// an empty argument, such as one left by a trailing comma, is not.
func (p *parser) parseArgs(fn string) ([]*node, error) {
	if p.peek().kind == tokenClose {
		p.bump()
		return nil, nil
	}
	var args []*node
	for {
		switch tok := p.peek(); tok.kind {
		case tokenClose, tokenSep:
			return nil, &ExpectedArgError{Col: tok.pos, Func: fn}
		case tokenEOF:
			return nil, &UnclosedParenError{Col: tok.pos}
		}
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch end := p.bump(); end.kind {
		case tokenClose:
			return args, nil
		case tokenSep:
			// next argument
		case tokenEOF:
			return nil, &UnclosedParenError{Col: end.pos}
		default:
			return nil, &ExpectedCommaError{Col: end.pos, Func: fn, Token: end.text}
		}
	}
}
