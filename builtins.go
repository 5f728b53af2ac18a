package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	errtree "github.com/Konstantin8105/errors"
)

// Assoc is the associativity of an infix operator.
type Assoc int8

const (
	AssocLeft Assoc = iota
	AssocRight
)

// Const is a named constant.
type Const struct {
	// Name is the lowercase name under which the constant is looked up.
	Name  string
	Value float64
}

// Func is a named function over float64 arguments.
type Func struct {
	// Name is the lowercase name under which the function is looked up.
	Name string
	// MinArity and MaxArity bound the accepted argument count; MaxArity is
	// -1 when the function takes any number of arguments.
	MinArity int
	MaxArity int
	// Eval computes the result. It is called only with an argument count
	// the arity bounds accept.
	Eval func(args []float64) (float64, error)
}

// Op describes one operator symbol. A symbol may carry a prefix role, an
// infix role, or both; a role is present when its precedence is nonzero,
// and higher precedence binds tighter.
type Op struct {
	Symbol rune

	PrefixPrec uint8
	EvalPrefix func(v float64) (float64, error)

	InfixPrec  uint8
	InfixAssoc Assoc
	EvalInfix  func(l, r float64) (float64, error)
}

func (o *Op) prefix() bool { return o.PrefixPrec != 0 }
func (o *Op) infix() bool  { return o.InfixPrec != 0 }

// Registry is an immutable set of constants, functions, and operators that
// drives lexing, parsing, and evaluation. Once constructed it is never
// modified and is safe to share between goroutines.
type Registry struct {
	consts map[string]float64
	funcs  map[string]*Func
	ops    map[rune]*Op

	constNames []string
	funcNames  []string
	opSymbols  []rune
}

// runes the lexer claims for itself; an operator may not shadow them.
const structuralRunes = "(),."

// NewRegistry builds a registry from builtin tables. Duplicate names or
// symbols, inconsistent role metadata, and names the lexer could never
// produce are configuration errors; every violation found is reported in a
// single error.
func NewRegistry(consts []Const, funcs []Func, ops []Op) (*Registry, error) {
	et := errtree.New("registry configuration")
	r := &Registry{
		consts: make(map[string]float64, len(consts)),
		funcs:  make(map[string]*Func, len(funcs)),
		ops:    make(map[rune]*Op, len(ops)),
	}
	for _, c := range consts {
		if err := checkName(c.Name); err != nil {
			et.Add(fmt.Errorf("constant %q: %w", c.Name, err))
			continue
		}
		if _, ok := r.consts[c.Name]; ok {
			et.Add(fmt.Errorf("constant %q defined twice", c.Name))
			continue
		}
		r.consts[c.Name] = c.Value
		r.constNames = append(r.constNames, c.Name)
	}
	for i := range funcs {
		f := funcs[i]
		if err := checkName(f.Name); err != nil {
			et.Add(fmt.Errorf("function %q: %w", f.Name, err))
			continue
		}
		if _, ok := r.funcs[f.Name]; ok {
			et.Add(fmt.Errorf("function %q defined twice", f.Name))
			continue
		}
		if f.Eval == nil {
			et.Add(fmt.Errorf("function %q has no evaluation function", f.Name))
			continue
		}
		if f.MinArity < 0 {
			et.Add(fmt.Errorf("function %q has negative minimum arity", f.Name))
			continue
		}
		if f.MaxArity >= 0 && f.MaxArity < f.MinArity {
			et.Add(fmt.Errorf("function %q has maximum arity %d below minimum %d", f.Name, f.MaxArity, f.MinArity))
			continue
		}
		r.funcs[f.Name] = &f
		r.funcNames = append(r.funcNames, f.Name)
	}
	for i := range ops {
		o := ops[i]
		if err := checkSymbol(o.Symbol); err != nil {
			et.Add(fmt.Errorf("operator %q: %w", o.Symbol, err))
			continue
		}
		if _, ok := r.ops[o.Symbol]; ok {
			et.Add(fmt.Errorf("operator %q defined twice", o.Symbol))
			continue
		}
		ok := true
		if o.prefix() != (o.EvalPrefix != nil) {
			et.Add(fmt.Errorf("operator %q: prefix precedence and prefix evaluation must be set together", o.Symbol))
			ok = false
		}
		if o.infix() != (o.EvalInfix != nil) {
			et.Add(fmt.Errorf("operator %q: infix precedence and infix evaluation must be set together", o.Symbol))
			ok = false
		}
		if !o.prefix() && !o.infix() {
			et.Add(fmt.Errorf("operator %q has neither a prefix nor an infix role", o.Symbol))
			ok = false
		}
		if !ok {
			continue
		}
		r.ops[o.Symbol] = &o
		r.opSymbols = append(r.opSymbols, o.Symbol)
	}
	if et.IsError() {
		return nil, et
	}
	return r, nil
}

// checkName rejects names the lexer could never produce as an identifier.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if name != strings.ToLower(name) {
		return fmt.Errorf("name must be lowercase")
	}
	for i, c := range name {
		switch {
		case c == '_', unicode.IsLetter(c):
		case unicode.IsDigit(c):
			if i == 0 {
				return fmt.Errorf("name starts with a digit")
			}
		default:
			return fmt.Errorf("name contains %q", c)
		}
	}
	return nil
}

// checkSymbol rejects runes the lexer already assigns another meaning.
func checkSymbol(sym rune) error {
	switch {
	case sym == 0:
		return fmt.Errorf("no symbol")
	case strings.ContainsRune(structuralRunes, sym), sym == '_',
		unicode.IsLetter(sym), unicode.IsDigit(sym), unicode.IsSpace(sym):
		return fmt.Errorf("symbol cannot be lexed as an operator")
	}
	return nil
}

// Constant looks up a constant by name, case-insensitively.
func (r *Registry) Constant(name string) (float64, bool) {
	v, ok := r.consts[strings.ToLower(name)]
	return v, ok
}

// Function looks up a function by name, case-insensitively. The result is
// shared and must not be modified.
func (r *Registry) Function(name string) (*Func, bool) {
	f, ok := r.funcs[strings.ToLower(name)]
	return f, ok
}

// Op looks up an operator by its symbol.
func (r *Registry) Op(sym rune) (Op, bool) {
	o := r.ops[sym]
	if o == nil {
		return Op{}, false
	}
	return *o, true
}

// IsOperator reports whether c is some operator's symbol.
func (r *Registry) IsOperator(c rune) bool {
	_, ok := r.ops[c]
	return ok
}

// PrefixBindingPower returns the binding power of sym's prefix role.
func (r *Registry) PrefixBindingPower(sym rune) (uint8, bool) {
	o := r.ops[sym]
	if o == nil || !o.prefix() {
		return 0, false
	}
	return o.PrefixPrec, true
}

// InfixBindingPower returns the binding power and associativity of sym's
// infix role.
func (r *Registry) InfixBindingPower(sym rune) (uint8, Assoc, bool) {
	o := r.ops[sym]
	if o == nil || !o.infix() {
		return 0, 0, false
	}
	return o.InfixPrec, o.InfixAssoc, true
}

// EvalPrefix applies sym's prefix role to a value.
func (r *Registry) EvalPrefix(sym rune, v float64) (float64, error) {
	o := r.ops[sym]
	if o == nil || !o.prefix() {
		return 0, &UnknownOperatorError{Sym: sym, Unary: true}
	}
	return o.EvalPrefix(v)
}

// EvalInfix applies sym's infix role to a pair of values.
func (r *Registry) EvalInfix(sym rune, l, rv float64) (float64, error) {
	o := r.ops[sym]
	if o == nil || !o.infix() {
		return 0, &UnknownOperatorError{Sym: sym}
	}
	return o.EvalInfix(l, rv)
}

// Call looks up a function by name and invokes it, enforcing its arity.
func (r *Registry) Call(name string, args []float64) (float64, error) {
	f, ok := r.Function(name)
	if !ok {
		return 0, &UnknownFunctionError{Name: name}
	}
	if len(args) < f.MinArity || (f.MaxArity >= 0 && len(args) > f.MaxArity) {
		return 0, &ArityError{Func: f.Name, Min: f.MinArity, Max: f.MaxArity, Got: len(args)}
	}
	return f.Eval(args)
}

// ConstNames returns the constant names in declaration order.
func (r *Registry) ConstNames() []string {
	return append([]string(nil), r.constNames...)
}

// FuncNames returns the function names in declaration order.
func (r *Registry) FuncNames() []string {
	return append([]string(nil), r.funcNames...)
}

// OpSymbols returns the operator symbols in declaration order.
func (r *Registry) OpSymbols() []rune {
	return append([]rune(nil), r.opSymbols...)
}

// DefaultConstants returns the builtin constant table.
func DefaultConstants() []Const {
	return []Const{
		{Name: "pi", Value: math.Pi},
		{Name: "e", Value: math.E},
	}
}

// DefaultFunctions returns the builtin function table.
func DefaultFunctions() []Func {
	return []Func{
		{Name: "sqrt", MinArity: 1, MaxArity: 1, Eval: sqrtBuiltin},
		{Name: "min", MinArity: 1, MaxArity: -1, Eval: minBuiltin},
		{Name: "max", MinArity: 1, MaxArity: -1, Eval: maxBuiltin},
	}
}

func sqrtBuiltin(args []float64) (float64, error) {
	if args[0] < 0 {
		return 0, &DomainError{X: args[0], Func: "sqrt"}
	}
	return math.Sqrt(args[0]), nil
}

func minBuiltin(args []float64) (float64, error) {
	best := args[0]
	for _, v := range args[1:] {
		best = math.Min(best, v)
	}
	return best, nil
}

func maxBuiltin(args []float64) (float64, error) {
	best := args[0]
	for _, v := range args[1:] {
		best = math.Max(best, v)
	}
	return best, nil
}

// DefaultOperators returns the builtin operator table. The prefix roles bind
// looser than ^ so that -2^2 keeps parsing as -(2^2).
func DefaultOperators() []Op {
	return []Op{
		{
			Symbol:     '+',
			PrefixPrec: 25,
			EvalPrefix: func(v float64) (float64, error) { return v, nil },
			InfixPrec:  10,
			InfixAssoc: AssocLeft,
			EvalInfix:  func(l, r float64) (float64, error) { return l + r, nil },
		},
		{
			Symbol:     '-',
			PrefixPrec: 25,
			EvalPrefix: func(v float64) (float64, error) { return -v, nil },
			InfixPrec:  10,
			InfixAssoc: AssocLeft,
			EvalInfix:  func(l, r float64) (float64, error) { return l - r, nil },
		},
		{
			Symbol:     '*',
			InfixPrec:  20,
			InfixAssoc: AssocLeft,
			EvalInfix:  func(l, r float64) (float64, error) { return l * r, nil },
		},
		{
			Symbol:     '/',
			InfixPrec:  20,
			InfixAssoc: AssocLeft,
			EvalInfix:  divBuiltin,
		},
		{
			Symbol:     '^',
			InfixPrec:  30,
			InfixAssoc: AssocRight,
			EvalInfix:  powBuiltin,
		},
	}
}

// ErrDivideByZero is the error from dividing by exactly zero.
var ErrDivideByZero = errors.New("division by zero")

func divBuiltin(l, r float64) (float64, error) {
	if r == 0 {
		return 0, ErrDivideByZero
	}
	return l / r, nil
}

func powBuiltin(l, r float64) (float64, error) {
	v := math.Pow(l, r)
	// math.Pow answers e.g. (-1)^0.5 with NaN; report it instead of
	// letting NaN pass as a result.
	if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
		return 0, &DomainError{X: l, Func: "^"}
	}
	return v, nil
}

var defaultRegistry = func() *Registry {
	r, err := NewRegistry(DefaultConstants(), DefaultFunctions(), DefaultOperators())
	if err != nil {
		panic("calc: " + err.Error())
	}
	return r
}()

// Default returns the registry of builtin constants, functions, and
// operators. It is shared by every call that does not name a registry
// explicitly.
func Default() *Registry {
	return defaultRegistry
}

// UnknownFunctionError is an error from a call to a function missing from
// the registry.
type UnknownFunctionError struct {
	// Name is the name that was looked up.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// UnknownOperatorError is an error from dispatching an operator role that is
// not in the registry.
type UnknownOperatorError struct {
	// Sym is the symbol that was looked up.
	Sym rune
	// Unary is whether the prefix role was requested.
	Unary bool
}

func (err *UnknownOperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return "unknown " + s + " operator " + strconv.Quote(string(err.Sym))
}

// ArityError is an error from calling a function with a number of arguments
// it does not accept.
type ArityError struct {
	// Func is the function that was called.
	Func string
	// Min and Max bound the accepted argument count; Max is -1 when the
	// function has no upper bound.
	Min, Max int
	// Got is the number of arguments the call supplied.
	Got int
}

func (err *ArityError) Error() string {
	var want string
	switch {
	case err.Max < 0:
		want = "at least " + strconv.Itoa(err.Min)
	case err.Min == err.Max:
		want = strconv.Itoa(err.Min)
	default:
		want = strconv.Itoa(err.Min) + " to " + strconv.Itoa(err.Max)
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Got) + " arguments (want " + want + ")"
}

// DomainError is an error from applying a function or operator to arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
