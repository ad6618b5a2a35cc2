package main

import (
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"
)

const defaultMaxDepth = 4096

// Interp is the stack machine. It owns the shared operand stack, the
// user-word dictionary, and the output log, all of which persist across
// Execute calls (REPL session semantics). A word's execution reads and
// writes this same stack, including when invoked from inside map or reduce
// dispatch. One goroutine at a time; instances share nothing.
type Interp struct {
	stack []Value
	dict  map[string][]token
	out   []string

	builtins *trie

	tee   io.Writer
	logfn func(mess string, args ...interface{})

	depth    int
	maxDepth int
}

func (in *Interp) logf(mess string, args ...interface{}) {
	if in.logfn != nil {
		in.logfn(mess, args...)
	}
}

// exec runs a token sequence in order, aborting on the first error. Mutations
// made by earlier tokens are left in place: there is no rollback, and later
// Execute calls observe the partial state.
func (in *Interp) exec(tokens []token) error {
	for _, tok := range tokens {
		if err := in.execToken(tok); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execToken(tok token) error {
	if tok.lit != nil {
		if in.logfn != nil {
			in.logf("push %v -- s:%v", tok.lit.Display(), in.stackString())
		}
		in.push(tok.lit)
		return nil
	}
	return in.invoke(tok.word, tok.scope)
}

// invoke applies name under the given scope, tracking nesting depth so that
// self-referential quotations fail cleanly instead of exhausting the host
// call stack.
func (in *Interp) invoke(name string, s scope) error {
	if in.depth >= in.maxDepth {
		return fmt.Errorf("%w: %v invocations", errTooDeep, in.depth)
	}
	in.depth++
	defer func() { in.depth-- }()

	if in.logfn != nil {
		in.logf("exec %v%v -- s:%v", s, name, in.stackString())
	}

	switch s {
	case scopeMap:
		return in.invokeMap(name)
	case scopeReduce:
		return in.invokeReduce(name)
	case scopeGlobal:
		return in.invokeGlobal(name)
	default:
		return in.invokeLocal(name)
	}
}

// invokeLocal dispatches a builtin from the table, falling back to the user
// dictionary. User word bodies replay stored literal tokens in order against
// the same shared state.
func (in *Interp) invokeLocal(name string) error {
	if fn, ok := builtinTable[name]; ok {
		return fn(in)
	}
	if body, ok := in.dict[name]; ok {
		return in.exec(body)
	}
	return fmt.Errorf("%w: %q", errUnknownWord, name)
}

// invokeMap pops a vector and applies name to each element in order: push
// the element, run the word under local scope, pop exactly one result. The
// results form a new vector in original order. A word that is not
// one-in/one-out leaks its extra stack effect onto the shared stack.
func (in *Interp) invokeMap(name string) error {
	vec, err := in.popVector("@" + name)
	if err != nil {
		return err
	}
	results := make(Vector, 0, len(vec))
	for _, elem := range vec {
		in.push(elem)
		if err := in.invoke(name, scopeLocal); err != nil {
			return err
		}
		if err := in.need(1, "@"+name); err != nil {
			return err
		}
		results = append(results, in.pop())
	}
	in.push(results)
	return nil
}

// invokeReduce pops a vector and folds it with name: the first element seeds
// the accumulator, then accumulator and element are pushed and the word run
// under local scope, popping the single result as the new accumulator.
func (in *Interp) invokeReduce(name string) error {
	vec, err := in.popVector("*" + name)
	if err != nil {
		return err
	}
	if len(vec) == 0 {
		return fmt.Errorf("%w: *%v", errEmptyReduce, name)
	}
	acc := vec[0]
	for _, elem := range vec[1:] {
		in.push(acc)
		in.push(elem)
		if err := in.invoke(name, scopeLocal); err != nil {
			return err
		}
		if err := in.need(1, "*"+name); err != nil {
			return err
		}
		acc = in.pop()
	}
	in.push(acc)
	return nil
}

// invokeGlobal drains the entire stack, in order, into one vector and
// reduces it with name, leaving the single result on the emptied stack.
func (in *Interp) invokeGlobal(name string) error {
	if len(in.stack) == 0 {
		return fmt.Errorf("%w: #%v", errEmptyStack, name)
	}
	all := make(Vector, len(in.stack))
	copy(all, in.stack)
	in.stack = in.stack[:0]
	in.push(all)
	return in.invokeReduce(name)
}

//// stack primitives

func (in *Interp) push(v Value) { in.stack = append(in.stack, v) }

// pop must only be called after a successful need; builtins validate before
// removing anything, so a failed operation leaves the stack unchanged.
func (in *Interp) pop() (v Value) {
	i := len(in.stack) - 1
	v, in.stack = in.stack[i], in.stack[:i]
	return v
}

func (in *Interp) need(n int, op string) error {
	if len(in.stack) < n {
		return fmt.Errorf("%w: %v needs %v value(s), have %v", errStackUnderflow, op, n, len(in.stack))
	}
	return nil
}

func (in *Interp) peek(back int) Value { return in.stack[len(in.stack)-1-back] }

func (in *Interp) popVector(op string) (Vector, error) {
	if err := in.need(1, op); err != nil {
		return nil, err
	}
	vec, ok := in.peek(0).(Vector)
	if !ok {
		return nil, fmt.Errorf("%w: %v requires a vector, got %v", errType, op, in.peek(0).Display())
	}
	in.pop()
	return vec, nil
}

func (in *Interp) popText(op string) (Text, error) {
	if err := in.need(1, op); err != nil {
		return "", err
	}
	text, ok := in.peek(0).(Text)
	if !ok {
		return "", fmt.Errorf("%w: %v requires text, got %v", errType, op, in.peek(0).Display())
	}
	in.pop()
	return text, nil
}

func (in *Interp) stackString() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range in.stack {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.Display())
	}
	sb.WriteByte(']')
	return sb.String()
}

//// builtin dispatch

// builtinWords is the fixed vocabulary registered in the trie.
var builtinWords = []string{
	"add", "sub", "mul", "div", "pow",
	"dup", "drop", "swap", "over", "rot",
	"vec", "unpack", "nth", "slice", "concat", "length",
	"run", "step", "quote",
	"def", "undef", "words",
	"print", "clear",
	"eq", "lt", "gt", "le", "ge",
}

var builtinTable map[string]func(in *Interp) error

func init() {
	builtinTable = map[string]func(in *Interp) error{
		"add": (*Interp).opAdd,
		"sub": (*Interp).opSub,
		"mul": (*Interp).opMul,
		"div": (*Interp).opDiv,
		"pow": (*Interp).opPow,

		"dup":  (*Interp).opDup,
		"drop": (*Interp).opDrop,
		"swap": (*Interp).opSwap,
		"over": (*Interp).opOver,
		"rot":  (*Interp).opRot,

		"vec":    (*Interp).opVec,
		"unpack": (*Interp).opUnpack,
		"nth":    (*Interp).opNth,
		"slice":  (*Interp).opSlice,
		"concat": (*Interp).opConcat,
		"length": (*Interp).opLength,

		"run":   (*Interp).opRun,
		"step":  (*Interp).opStep,
		"quote": (*Interp).opQuote,

		"def":   (*Interp).opDef,
		"undef": (*Interp).opUndef,
		"words": (*Interp).opWords,

		"print": (*Interp).opPrint,
		"clear": (*Interp).opClear,

		"eq": (*Interp).opEq,
		"lt": (*Interp).opLt,
		"gt": (*Interp).opGt,
		"le": (*Interp).opLe,
		"ge": (*Interp).opGe,
	}
}

//// arithmetic

func (in *Interp) binaryRat(op string, f func(a, b *big.Rat) (*big.Rat, error)) error {
	if err := in.need(2, op); err != nil {
		return err
	}
	a, aok := in.peek(1).(Rational)
	b, bok := in.peek(0).(Rational)
	if !aok || !bok {
		return fmt.Errorf("%w: %v requires two numbers, got %v %v", errType, op, in.peek(1).Display(), in.peek(0).Display())
	}
	rat, err := f(a.rat, b.rat)
	if err != nil {
		return err
	}
	in.pop()
	in.pop()
	in.push(rationalFromRat(rat))
	return nil
}

func (in *Interp) opAdd() error { return in.binaryRat("add", ratAdd) }
func (in *Interp) opSub() error { return in.binaryRat("sub", ratSub) }
func (in *Interp) opMul() error { return in.binaryRat("mul", ratMul) }
func (in *Interp) opDiv() error { return in.binaryRat("div", ratDiv) }
func (in *Interp) opPow() error { return in.binaryRat("pow", ratPow) }

//// stack shuffles

func (in *Interp) opDup() error {
	if err := in.need(1, "dup"); err != nil {
		return err
	}
	in.push(in.peek(0))
	return nil
}

func (in *Interp) opDrop() error {
	if err := in.need(1, "drop"); err != nil {
		return err
	}
	in.pop()
	return nil
}

func (in *Interp) opSwap() error {
	if err := in.need(2, "swap"); err != nil {
		return err
	}
	i := len(in.stack)
	in.stack[i-2], in.stack[i-1] = in.stack[i-1], in.stack[i-2]
	return nil
}

func (in *Interp) opOver() error {
	if err := in.need(2, "over"); err != nil {
		return err
	}
	in.push(in.peek(1))
	return nil
}

// rot rotates the top three so that a b c becomes b c a.
func (in *Interp) opRot() error {
	if err := in.need(3, "rot"); err != nil {
		return err
	}
	i := len(in.stack)
	in.stack[i-3], in.stack[i-2], in.stack[i-1] = in.stack[i-2], in.stack[i-1], in.stack[i-3]
	return nil
}

//// vector operations

func (in *Interp) opVec() error {
	if err := in.need(1, "vec"); err != nil {
		return err
	}
	count, ok := in.peek(0).(Rational)
	if !ok {
		return fmt.Errorf("%w: vec requires a count, got %v", errType, in.peek(0).Display())
	}
	if !count.rat.IsInt() || count.rat.Sign() < 0 || !count.rat.Num().IsInt64() {
		return fmt.Errorf("%w: %v", errInvalidCount, count.Display())
	}
	// arity check in int64: a count near MaxInt64 would wrap n+1
	n64 := count.rat.Num().Int64()
	if n64 > int64(len(in.stack))-1 {
		return fmt.Errorf("%w: vec needs %v value(s), have %v", errStackUnderflow, n64, len(in.stack)-1)
	}
	n := int(n64)
	in.pop()
	vec := make(Vector, n)
	copy(vec, in.stack[len(in.stack)-n:])
	in.stack = in.stack[:len(in.stack)-n]
	in.push(vec)
	return nil
}

func (in *Interp) opUnpack() error {
	vec, err := in.popVector("unpack")
	if err != nil {
		return err
	}
	for _, elem := range vec {
		in.push(elem)
	}
	return nil
}

func (in *Interp) opNth() error {
	if err := in.need(2, "nth"); err != nil {
		return err
	}
	idx, iok := in.peek(0).(Rational)
	vec, vok := in.peek(1).(Vector)
	if !vok || !iok || !idx.rat.IsInt() || !idx.rat.Num().IsInt64() {
		return fmt.Errorf("%w: nth requires a vector and an integer index, got %v %v", errType, in.peek(1).Display(), in.peek(0).Display())
	}
	at := resolveIndex(idx.rat.Num().Int64(), len(vec))
	if at < 0 || at >= len(vec) {
		return fmt.Errorf("%w: index %v of %v element(s)", errIndexOutOfBounds, idx.Display(), len(vec))
	}
	in.pop()
	in.pop()
	in.push(vec[at])
	return nil
}

// slice pops end and start indices (end closer to the top) and a vector,
// pushing the subvector [start:end). Negative indices count from the end.
func (in *Interp) opSlice() error {
	if err := in.need(3, "slice"); err != nil {
		return err
	}
	end, eok := in.peek(0).(Rational)
	start, sok := in.peek(1).(Rational)
	vec, vok := in.peek(2).(Vector)
	if !vok || !sok || !eok ||
		!start.rat.IsInt() || !start.rat.Num().IsInt64() ||
		!end.rat.IsInt() || !end.rat.Num().IsInt64() {
		return fmt.Errorf("%w: slice requires a vector and two integer indices", errType)
	}
	lo := resolveIndex(start.rat.Num().Int64(), len(vec))
	hi := resolveIndex(end.rat.Num().Int64(), len(vec))
	if lo < 0 || hi > len(vec) || lo > hi {
		return fmt.Errorf("%w: slice %v..%v of %v element(s)", errIndexOutOfBounds, start.Display(), end.Display(), len(vec))
	}
	in.pop()
	in.pop()
	in.pop()
	out := make(Vector, hi-lo)
	copy(out, vec[lo:hi])
	in.push(out)
	return nil
}

// resolveIndex maps a possibly-negative index onto [0, length], clamping
// out-of-range values so callers can range-check without overflow.
func resolveIndex(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}
	switch {
	case i < 0:
		return -1
	case i > int64(length):
		return length + 1
	}
	return int(i)
}

func (in *Interp) opConcat() error {
	if err := in.need(2, "concat"); err != nil {
		return err
	}
	b, bok := in.peek(0).(Vector)
	a, aok := in.peek(1).(Vector)
	if !aok || !bok {
		return fmt.Errorf("%w: concat requires two vectors, got %v %v", errType, in.peek(1).Display(), in.peek(0).Display())
	}
	in.pop()
	in.pop()
	out := make(Vector, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	in.push(out)
	return nil
}

func (in *Interp) opLength() error {
	vec, err := in.popVector("length")
	if err != nil {
		return err
	}
	in.push(rationalFromInt(int64(len(vec))))
	return nil
}

//// execution control

// run pops a vector and walks it in order: text elements name words to
// invoke under local scope, anything else is pushed literally. This is how
// quoted code stored as vectors of names gets executed.
func (in *Interp) opRun() error {
	vec, err := in.popVector("run")
	if err != nil {
		return err
	}
	for _, elem := range vec {
		if name, ok := elem.(Text); ok {
			if err := in.invoke(string(name), scopeLocal); err != nil {
				return err
			}
		} else {
			in.push(elem)
		}
	}
	return nil
}

// step pops a word name then a vector and applies the word to each element
// in order, pushing the element first. Unlike map, results are not
// collected: whatever stack effect the word has is left in place.
func (in *Interp) opStep() error {
	if err := in.need(2, "step"); err != nil {
		return err
	}
	name, nok := in.peek(0).(Text)
	vec, vok := in.peek(1).(Vector)
	if !nok || !vok {
		return fmt.Errorf("%w: step requires a vector and a word name, got %v %v", errType, in.peek(1).Display(), in.peek(0).Display())
	}
	in.pop()
	in.pop()
	for _, elem := range vec {
		in.push(elem)
		if err := in.invoke(string(name), scopeLocal); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) opQuote() error {
	if err := in.need(1, "quote"); err != nil {
		return err
	}
	in.push(Vector{in.pop()})
	return nil
}

//// dictionary operations

// def pops a name then a body vector (stack order: body name def) and
// compiles the body under the name, overwriting any prior definition. A
// text element that names a builtin or an already-defined word becomes a
// live local-scope call; every other element, including text naming nothing
// yet, is stored as a literal push. Unresolved names can still be invoked
// later through run or step.
func (in *Interp) opDef() error {
	if err := in.need(2, "def"); err != nil {
		return err
	}
	name, nok := in.peek(0).(Text)
	body, bok := in.peek(1).(Vector)
	if !nok || !bok {
		return fmt.Errorf("%w: def requires a vector body and a text name, got %v %v", errType, in.peek(1).Display(), in.peek(0).Display())
	}
	in.pop()
	in.pop()
	tokens := make([]token, len(body))
	for i, elem := range body {
		if word, ok := elem.(Text); ok && in.resolves(string(word)) {
			tokens[i] = wordToken(string(word), scopeLocal)
		} else {
			tokens[i] = litToken(elem)
		}
	}
	in.dict[string(name)] = tokens
	in.logf("def %q (%v token(s))", string(name), len(tokens))
	return nil
}

// resolves reports whether name currently names a builtin or user word.
func (in *Interp) resolves(name string) bool {
	if _, ok := builtinTable[name]; ok {
		return true
	}
	_, ok := in.dict[name]
	return ok
}

func (in *Interp) opUndef() error {
	name, err := in.popText("undef")
	if err != nil {
		return err
	}
	if _, ok := in.dict[string(name)]; !ok {
		return fmt.Errorf("%w: %q", errUnknownWord, string(name))
	}
	delete(in.dict, string(name))
	return nil
}

func (in *Interp) opWords() error {
	names := make([]string, 0, len(in.dict))
	for name := range in.dict {
		names = append(names, name)
	}
	sort.Strings(names)
	vec := make(Vector, len(names))
	for i, name := range names {
		vec[i] = Text(name)
	}
	in.push(vec)
	return nil
}

//// I/O

func (in *Interp) opPrint() error {
	if err := in.need(1, "print"); err != nil {
		return err
	}
	line := in.pop().Display()
	in.out = append(in.out, line)
	if in.tee != nil {
		if _, err := io.WriteString(in.tee, line+"\n"); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// clear empties the output log; the stack is untouched.
func (in *Interp) opClear() error {
	in.out = in.out[:0]
	return nil
}

//// comparisons

func (in *Interp) opEq() error {
	if err := in.need(2, "eq"); err != nil {
		return err
	}
	b, a := in.pop(), in.pop()
	in.push(Boolean(equalValues(a, b)))
	return nil
}

func (in *Interp) compareRat(op string, accept func(cmp int) bool) error {
	if err := in.need(2, op); err != nil {
		return err
	}
	a, aok := in.peek(1).(Rational)
	b, bok := in.peek(0).(Rational)
	if !aok || !bok {
		return fmt.Errorf("%w: %v requires two numbers, got %v %v", errType, op, in.peek(1).Display(), in.peek(0).Display())
	}
	in.pop()
	in.pop()
	in.push(Boolean(accept(a.rat.Cmp(b.rat))))
	return nil
}

func (in *Interp) opLt() error { return in.compareRat("lt", func(cmp int) bool { return cmp < 0 }) }
func (in *Interp) opGt() error { return in.compareRat("gt", func(cmp int) bool { return cmp > 0 }) }
func (in *Interp) opLe() error { return in.compareRat("le", func(cmp int) bool { return cmp <= 0 }) }
func (in *Interp) opGe() error { return in.compareRat("ge", func(cmp int) bool { return cmp >= 0 }) }
