package calc

import "strconv"

// Eval reduces the expression to a single value using the registry it was
// parsed with. Evaluation is pure: the same expression always yields the
// same result, and the first error from any subtree aborts the walk with no
// partial result.
func (e *Expr) Eval() (float64, error) {
	return e.n.eval(e.reg)
}

func (n *node) eval(reg *Registry) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeConst:
		v, ok := reg.Constant(n.name)
		if !ok {
			return 0, &UnknownConstantError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(reg)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return reg.Call(n.name, args)
	case nodePrefix:
		v, err := n.left.eval(reg)
		if err != nil {
			return 0, err
		}
		return reg.EvalPrefix(n.sym, v)
	case nodeInfix:
		l, err := n.left.eval(reg)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(reg)
		if err != nil {
			return 0, err
		}
		return reg.EvalInfix(n.sym, l, r)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// Evaluate tokenizes, parses, and evaluates one expression against the
// default builtins, surfacing the first error from any stage.
func Evaluate(src string) (float64, error) {
	return Default().Evaluate(src)
}

// Evaluate tokenizes, parses, and evaluates one expression against r's
// builtins.
func (r *Registry) Evaluate(src string) (float64, error) {
	e, err := r.Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// UnknownConstantError is an error from a reference to a constant missing
// from the registry.
type UnknownConstantError struct {
	// Name is the name that was looked up.
	Name string
}

func (err *UnknownConstantError) Error() string {
	return "unknown constant: " + strconv.Quote(err.Name)
}
