package main

import (
	"fmt"
	"os"

	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/prettyprinter"
)

// dumpAst parses source and prints its parenthesized form, the `lox
// ast` subcommand (internal/prettyprinter, grounded in
// original_source/jlox-in-cpp/AstPrinter.cpp).
func dumpAst(source string) bool {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()

	p := parser.New(tokens)
	statements, bag := p.Parse()
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return false
	}

	fmt.Println(prettyprinter.PrintProgram(statements))
	return true
}
