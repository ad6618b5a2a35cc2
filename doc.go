/* Package main: ratl, a tiny concatenative language on exact rationals

ratl programs are flat sequences of literals and words, implicitly composed
by juxtaposition against one shared value stack. There are no registers and
no call-local stacks: every word, builtin or user-defined, reads and writes
the same global stack, which persists across executions together with the
user dictionary and the output log, giving REPL-session semantics.

Numbers are exact rationals of arbitrary precision. Literal forms are
integers (42, -3), decimals (3.14, converted through a fixed ten-digit
rendering and held exactly thereafter), fractions (1/3), and scientific
notation (2e3, 1.5e-2). Arithmetic never rounds: 1/2 1/3 add is exactly 5/6,
and an integer-valued result displays as a bare integer (4/2 is 2).

The other literals are 'quoted text', true, false, nil, and bracketed
vectors. A vector literal is tokenized recursively; word names appearing
inside it are stored as plain text rather than live references, which is
what makes vectors usable as quotations: run pops a vector and invokes each
text element as a word, pushing everything else.

A word reference may carry a scope prefix that changes how it is applied:

	word    local (default): operate on the stack directly
	@word   map: pop a vector, apply word per element, collect results
	*word   reduce: pop a vector, fold it to a single value with word
	#word   global: fold the entire stack to a single value with word

so "[1 2 3 4] *add print" prints 10, and "1 2 3 #add" leaves 6 as the only
stack value. A # not immediately followed by a word opens a line comment.

The builtin vocabulary is fixed and registered in a prefix trie that the
tokenizer consults for longest-match scanning (words need no surrounding
whitespace): arithmetic (add sub mul div pow), stack shuffles (dup drop swap
over rot), vector operations (vec unpack nth slice concat length), execution
control (run step quote), dictionary operations (def undef words),
comparisons (eq lt gt le ge), and output (print clear).

New words are defined by pairing a vector body with a name:

	[dup add] 'double' def
	[1 2 3] @double print     # prints [2 4 6]

At definition time, body text naming a builtin or an already-defined word is
compiled into a live call; text naming nothing yet stays a literal and can
still be invoked later through run or step.

Errors (stack underflow, type mismatches, division by zero, unknown words,
and the rest) abort the current execution immediately. There is no
transactional rollback: whatever earlier tokens already did to the stack,
dictionary, or output log remains visible to later executions.

The ratl command runs programs from files or -e, or starts an interactive
session when given neither.
*/
package main
