package main

// scope selects how a word reference is applied when executed.
type scope int

const (
	scopeLocal  scope = iota // default: operate on the shared stack directly
	scopeMap                 // @: apply per element of a popped vector
	scopeReduce              // *: fold a popped vector to a single value
	scopeGlobal              // #: fold the entire stack to a single value
)

func (s scope) String() string {
	switch s {
	case scopeMap:
		return "@"
	case scopeReduce:
		return "*"
	case scopeGlobal:
		return "#"
	}
	return ""
}

// token is one executable unit: either a literal value to push (lit is
// non-nil) or a scoped word reference to invoke.
type token struct {
	lit   Value
	word  string
	scope scope
}

func litToken(v Value) token { return token{lit: v} }

func wordToken(name string, s scope) token { return token{word: name, scope: s} }

func (tok token) String() string {
	if tok.lit != nil {
		return tok.lit.Display()
	}
	return tok.scope.String() + tok.word
}
