// Package calc implements a float64 arithmetic expression calculator.
//
// Expressions are lexed, parsed by precedence climbing, and evaluated
// against a registry of constants, functions, and operators. The default
// registry provides pi and e, sqrt, min, and max, and the operators + - * /
// and ^; extending the calculator is adding a table entry, not writing new
// parser code.
//
// Precedence is data carried by the registry. With the default table,
// addition binds loosest, then multiplication, then the unary operators,
// then exponentiation, which associates rightward: "-2^2" is "-(2^2)" and
// "2^3^2" is "2^(3^2)".
package calc
