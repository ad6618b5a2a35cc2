package main

import (
	"fmt"
	"io"
	"strings"
)

// interpDumper renders interpreter state for debugging: the stack top
// first, the user dictionary with stored bodies, and any pending output.
// Used by the REPL's :dump command and by failing tests.
type interpDumper struct {
	in  *Interp
	out io.Writer
}

func (dump interpDumper) dump() {
	fmt.Fprintf(dump.out, "# Interp Dump\n")
	dump.dumpStack()
	dump.dumpWords()
	dump.dumpOutput()
}

func (dump interpDumper) dumpStack() {
	fmt.Fprintf(dump.out, "# Stack (%v deep, top first)\n", len(dump.in.stack))
	for i := len(dump.in.stack) - 1; i >= 0; i-- {
		fmt.Fprintf(dump.out, "  %v: %v\n", len(dump.in.stack)-1-i, dump.in.stack[i].Display())
	}
}

func (dump interpDumper) dumpWords() {
	names := dump.in.Words()
	fmt.Fprintf(dump.out, "# Words (%v defined)\n", len(names))
	for _, name := range names {
		parts := make([]string, len(dump.in.dict[name]))
		for i, tok := range dump.in.dict[name] {
			parts[i] = tok.String()
		}
		fmt.Fprintf(dump.out, "  %q: [%v]\n", name, strings.Join(parts, " "))
	}
}

func (dump interpDumper) dumpOutput() {
	fmt.Fprintf(dump.out, "# Output (%v line(s))\n", len(dump.in.out))
	for _, line := range dump.in.out {
		fmt.Fprintf(dump.out, "  %v\n", line)
	}
}
