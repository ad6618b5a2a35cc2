package main

import (
	"math/big"
	"strings"
)

// Value is the single datum type that flows through the operand stack. The
// union is closed: Rational, Text, Boolean, Nil, and Vector are the only
// variants. Values are immutable once constructed; operations replace stack
// slots rather than editing a value in place.
type Value interface {
	// Display renders the canonical display form: integer rationals as bare
	// digits, other rationals as "n/d", text wrapped in single quotes,
	// booleans as "true"/"false", nil as "nil", and vectors as their
	// space-joined element displays inside brackets.
	Display() string

	value()
}

// Rational is an exact rational number, always held in lowest terms with a
// nonzero denominator (big.Rat maintains both invariants).
type Rational struct{ rat *big.Rat }

// Text is an immutable character sequence. A Text on the stack doubles as a
// word name for run and step.
type Text string

// Boolean is a truth value.
type Boolean bool

// Nil is the unit value.
type Nil struct{}

// Vector is an ordered, possibly empty, arbitrarily nested value sequence.
type Vector []Value

func (r Rational) value() {}
func (t Text) value()     {}
func (b Boolean) value()  {}
func (n Nil) value()      {}
func (v Vector) value()   {}

func (r Rational) Display() string {
	if r.rat.IsInt() {
		return r.rat.Num().String()
	}
	return r.rat.Num().String() + "/" + r.rat.Denom().String()
}

func (t Text) Display() string { return "'" + string(t) + "'" }

func (b Boolean) Display() string {
	if b {
		return "true"
	}
	return "false"
}

func (n Nil) Display() string { return "nil" }

func (v Vector) Display() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elem := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(elem.Display())
	}
	sb.WriteByte(']')
	return sb.String()
}

func rationalFromRat(rat *big.Rat) Rational { return Rational{rat} }

func rationalFromInt(n int64) Rational { return Rational{new(big.Rat).SetInt64(n)} }

// equalValues reports structural equality: same variant, and equal content,
// with rationals compared numerically and vectors elementwise.
func equalValues(a, b Value) bool {
	switch av := a.(type) {
	case Rational:
		bv, ok := b.(Rational)
		return ok && av.rat.Cmp(bv.rat) == 0
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Vector:
		bv, ok := b.(Vector)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}
