package calc

import "strconv"

// InputError is an error with position information. Every error resulting
// from invalid expression text implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the
	// error.
	Pos() int
}

// UnexpectedTokenError indicates a token that cannot begin an operand, such
// as a closing parenthesis or an operator with no prefix role.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the token.
	Token string
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// UnexpectedEndError indicates input that ended where an operand was
// required.
type UnexpectedEndError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *UnexpectedEndError) Error() string {
	return errpos(err.Col, "unexpected end of expression")
}

func (err *UnexpectedEndError) Pos() int {
	return err.Col
}

// UnclosedParenError indicates a group or argument list that was not closed
// where the parser required its closing parenthesis.
type UnclosedParenError struct {
	// Col is the position at which ) was required.
	Col int
}

func (err *UnclosedParenError) Error() string {
	return errpos(err.Col, "expected )")
}

func (err *UnclosedParenError) Pos() int {
	return err.Col
}

// TrailingInputError indicates tokens left over after a complete expression.
type TrailingInputError struct {
	// Col is the position of the first leftover token.
	Col int
	// Token is the text of the first leftover token.
	Token string
}

func (err *TrailingInputError) Error() string {
	return errpos(err.Col, "trailing input starting at "+strconv.Quote(err.Token))
}

func (err *TrailingInputError) Pos() int {
	return err.Col
}

// ExpectedCommaError indicates an argument list in which something other
// than a comma or the closing parenthesis followed an argument.
type ExpectedCommaError struct {
	// Col is the position of the offending token.
	Col int
	// Func is the function being called.
	Func string
	// Token is the text of the offending token.
	Token string
}

func (err *ExpectedCommaError) Error() string {
	return errpos(err.Col, "expected , or ) in call of "+err.Func+", got "+strconv.Quote(err.Token))
}

func (err *ExpectedCommaError) Pos() int {
	return err.Col
}

// ExpectedArgError indicates an argument list with a missing argument, e.g.
// one left by a trailing comma.
type ExpectedArgError struct {
	// Col is the position at which an argument was required.
	Col int
	// Func is the function being called.
	Func string
}

func (err *ExpectedArgError) Error() string {
	return errpos(err.Col, "expected argument in call of "+err.Func)
}

func (err *ExpectedArgError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*UnexpectedEndError)(nil)
	_ InputError = (*UnclosedParenError)(nil)
	_ InputError = (*TrailingInputError)(nil)
	_ InputError = (*ExpectedCommaError)(nil)
	_ InputError = (*ExpectedArgError)(nil)
	_ InputError = (*LexError)(nil)
)
