package main

import (
	"sort"
	"strings"

	"github.com/ratlang/ratl/internal/panicerr"
)

// New builds an interpreter with an empty stack, dictionary, and output log.
func New(opts ...Option) *Interp {
	in := &Interp{
		dict:     make(map[string][]token),
		builtins: newTrie(builtinWords...),
		maxDepth: defaultMaxDepth,
	}
	in.apply(opts...)
	return in
}

// Execute tokenizes program and runs it against the interpreter's persistent
// state, returning the newline-joined output log accumulated so far,
// including output from prior calls, unless cleared. An error aborts at the
// first failing token; mutations made by earlier tokens stand.
func (in *Interp) Execute(program string) (string, error) {
	err := panicerr.Recover("Interp", func() error {
		tokens, err := in.tokenize(program)
		if err != nil {
			return err
		}
		return in.exec(tokens)
	})
	return in.Output(), err
}

// StackSnapshot returns display strings for the current stack, top first.
func (in *Interp) StackSnapshot() []string {
	snap := make([]string, len(in.stack))
	for i, v := range in.stack {
		snap[len(snap)-1-i] = v.Display()
	}
	return snap
}

// Output returns the newline-joined output log.
func (in *Interp) Output() string { return strings.Join(in.out, "\n") }

// ClearOutput empties the output log, independent of program execution.
func (in *Interp) ClearOutput() { in.out = in.out[:0] }

// StackDepth returns the number of values on the operand stack.
func (in *Interp) StackDepth() int { return len(in.stack) }

// Words returns the user-defined word names in sorted order.
func (in *Interp) Words() []string {
	names := make([]string, 0, len(in.dict))
	for name := range in.dict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
