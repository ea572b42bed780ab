package main

import (
	"fmt"

	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/token"
)

// dumpTokens lexes source and prints one line per token, the `lox
// tokens` subcommand spec.md §6's tooling section calls for alongside
// `ast` and `disasm`.
func dumpTokens(source string) bool {
	lx := lexer.New(source)
	for _, tok := range lx.ScanTokens() {
		fmt.Printf("%-4d %-14s %q\n", tok.Line, tok.Kind, tok.Lexeme)
		if tok.Kind == token.EOF {
			break
		}
	}
	return true
}
