package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	calc "github.com/BlazingHotCode/gocalc"
)

var cli struct {
	Echo   bool     `help:"Print the parse tree before each result."`
	Format string   `default:"%g" help:"Result formatting verb."`
	List   bool     `help:"List the builtin constants, functions, and operators and exit."`
	Exprs  []string `arg:"" optional:"" name:"expr" help:"Expressions to evaluate instead of reading stdin."`
}

func main() {
	log.SetFlags(0)
	kong.Parse(&cli, kong.Description(`An interactive arithmetic calculator.

With no arguments, one expression is read per line from stdin until "exit" or
end of input. Expression arguments are evaluated directly instead.`))
	if cli.List {
		list(calc.Default())
		return
	}
	if len(cli.Exprs) > 0 {
		code := 0
		for _, src := range cli.Exprs {
			if !run(src) {
				code = 1
			}
		}
		os.Exit(code)
	}
	repl()
}

func repl() {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}
		run(line)
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
}

// run evaluates one expression and reports whether it succeeded. Input
// errors go to stderr and never stop the process.
func run(src string) bool {
	e, err := calc.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return false
	}
	if cli.Echo {
		fmt.Println(e)
	}
	v, err := e.Eval()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return false
	}
	fmt.Printf(cli.Format+"\n", v)
	return true
}

func list(reg *calc.Registry) {
	for _, name := range reg.ConstNames() {
		v, _ := reg.Constant(name)
		fmt.Printf("%s\t= %g\n", name, v)
	}
	for _, name := range reg.FuncNames() {
		f, _ := reg.Function(name)
		fmt.Printf("%s\t%s\n", name, arity(f))
	}
	for _, sym := range reg.OpSymbols() {
		o, _ := reg.Op(sym)
		if o.PrefixPrec != 0 {
			fmt.Printf("%c\tprefix, precedence %d\n", sym, o.PrefixPrec)
		}
		if o.InfixPrec != 0 {
			assoc := "left"
			if o.InfixAssoc == calc.AssocRight {
				assoc = "right"
			}
			fmt.Printf("%c\tinfix, precedence %d, %s-associative\n", sym, o.InfixPrec, assoc)
		}
	}
}

func arity(f *calc.Func) string {
	switch {
	case f.MaxArity < 0:
		return "at least " + strconv.Itoa(f.MinArity) + " arguments"
	case f.MinArity == f.MaxArity:
		if f.MinArity == 1 {
			return "1 argument"
		}
		return strconv.Itoa(f.MinArity) + " arguments"
	default:
		return strconv.Itoa(f.MinArity) + " to " + strconv.Itoa(f.MaxArity) + " arguments"
	}
}
