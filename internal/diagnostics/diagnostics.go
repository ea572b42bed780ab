// Package diagnostics models the error outcomes shared by both interpreter
// tiers: compile-time diagnostics (scan/parse/resolve, or compile) and
// runtime errors. Both tiers report through this package so the CLI driver
// never needs tier-specific error handling.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Kind distinguishes the two disjoint error classes described in spec.md §7.
// Static semantic errors (resolver, compiler) are reported as Compile too:
// both outcomes are "stop before running" and share the same wire format.
type Kind int

const (
	Compile Kind = iota
	Runtime
)

// Diagnostic is a single reported problem, carrying enough context to
// render the exact message formats required by spec.md §6.
type Diagnostic struct {
	Kind    Kind
	Line    int
	AtEnd   bool   // true if this compile error occurred at EOF rather than at a lexeme
	Where   string // lexeme the error occurred at; unused when AtEnd or Kind == Runtime
	Message string
}

func (d Diagnostic) Error() string {
	switch {
	case d.Kind == Runtime:
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	case d.AtEnd:
		return fmt.Sprintf("[line %d] Error at end: %s", d.Line, d.Message)
	default:
		return fmt.Sprintf("[line %d] Error at '%s': %s", d.Line, d.Where, d.Message)
	}
}

// Bag accumulates diagnostics produced while scanning, parsing, resolving,
// or compiling a single run. Collecting rather than stopping at the first
// error lets a run report every independent syntax mistake it can recover
// from via panic-mode synchronization (spec.md §4.2, §7).
type Bag struct {
	// RunID correlates every diagnostic in this run with the REPL line or
	// file invocation that produced it; purely informational.
	RunID   string
	entries []Diagnostic
}

// NewBag creates an empty diagnostic bag tagged with a fresh run id.
func NewBag() *Bag {
	return &Bag{RunID: uuid.NewString()}
}

// AddCompile reports a compile-time error at the given lexeme.
func (b *Bag) AddCompile(line int, where, message string) {
	b.entries = append(b.entries, Diagnostic{Kind: Compile, Line: line, Where: where, Message: message})
}

// AddCompileAtEnd reports a compile-time error positioned at EOF.
func (b *Bag) AddCompileAtEnd(line int, message string) {
	b.entries = append(b.entries, Diagnostic{Kind: Compile, Line: line, AtEnd: true, Message: message})
}

// AddRuntime reports a runtime error, unwinding the current run.
func (b *Bag) AddRuntime(line int, message string) {
	b.entries = append(b.entries, Diagnostic{Kind: Runtime, Line: line, Message: message})
}

func (b *Bag) HasErrors() bool {
	return len(b.entries) > 0
}

func (b *Bag) Entries() []Diagnostic {
	return b.entries
}

// Print writes every diagnostic to w in declaration order.
func (b *Bag) Print(w io.Writer) {
	for _, d := range b.entries {
		fmt.Fprintln(w, d.Error())
	}
}
