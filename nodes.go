package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node
// owns its children outright; the tree has exactly one root, and every leaf
// is a number literal or a constant reference.
type node struct {
	kind nodeKind

	num  float64 // nodeNum
	name string  // nodeConst, nodeCall
	sym  rune    // nodePrefix, nodeInfix

	args        []*node // nodeCall arguments, in call order
	left, right *node   // nodeInfix operands; nodePrefix uses left only
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum    // literal value
	nodeConst  // constant reference, resolved at evaluation
	nodeCall   // function call
	nodePrefix // unary operator applied to left
	nodeInfix  // binary operator applied to left and right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeConst:
		return "Const"
	case nodeCall:
		return "Call"
	case nodePrefix:
		return "Prefix"
	case nodeInfix:
		return "Infix"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully grouped rendering of the tree, one pair of parentheses
// per operator node, so that tests and echo output expose the exact grouping
// the parser chose.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		// 'f' keeps the rendering inside the grammar: the lexer has no
		// exponent syntax to read a 'g'-style 1e+06 back.
		b.WriteString(strconv.FormatFloat(n.num, 'f', -1, 64))
	case nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case nodePrefix:
		b.WriteByte('(')
		b.WriteRune(n.sym)
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeInfix:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteRune(n.sym)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
