package main

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxExponent caps the magnitude of pow exponents (and of scientific
// notation exponents, which share the hazard) so a single token cannot force
// unbounded bignum growth.
const maxExponent = 10000

// scanNumber recognizes a numeric literal at the start of text and returns
// its value along with the number of bytes consumed. Accepted forms:
//
//	integer     -?[0-9]+
//	decimal     -?[0-9]+.[0-9]+
//	fraction    -?[0-9]+/[0-9]+
//	scientific  <any of the above>[eE]<signed integer>
//
// n is zero when text does not start with a numeric literal. A non-nil err
// means a literal was recognized but is invalid (zero denominator, exponent
// out of bounds).
func scanNumber(text string) (val Rational, n int, err error) {
	pos := 0
	if pos < len(text) && text[pos] == '-' && pos+1 < len(text) && isDigit(text[pos+1]) {
		pos++
	}
	start := pos
	for pos < len(text) && isDigit(text[pos]) {
		pos++
	}
	if pos == start {
		return Rational{}, 0, nil
	}

	rat := new(big.Rat)
	switch {
	case pos < len(text) && text[pos] == '.' && pos+1 < len(text) && isDigit(text[pos+1]):
		pos++
		for pos < len(text) && isDigit(text[pos]) {
			pos++
		}
		rat = decimalToRat(text[:pos])

	case pos < len(text) && text[pos] == '/' && pos+1 < len(text) && isDigit(text[pos+1]):
		slash := pos
		pos++
		for pos < len(text) && isDigit(text[pos]) {
			pos++
		}
		num, _ := new(big.Int).SetString(text[:slash], 10)
		den, _ := new(big.Int).SetString(text[slash+1:pos], 10)
		if den.Sign() == 0 {
			return Rational{}, 0, fmt.Errorf("%w: zero denominator in %q", errDivisionByZero, text[:pos])
		}
		rat.SetFrac(num, den)

	default:
		num, _ := new(big.Int).SetString(text[:pos], 10)
		rat.SetInt(num)
	}

	if exp, m, ok := scanExponent(text[pos:]); ok {
		if exp > maxExponent || exp < -maxExponent {
			return Rational{}, 0, fmt.Errorf("%w: exponent %v in %q (max %v)", errExponentTooLarge, exp, text[:pos+m], maxExponent)
		}
		mag := exp
		if mag < 0 {
			mag = -mag
		}
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(mag)), nil)
		if exp >= 0 {
			rat.Mul(rat, new(big.Rat).SetInt(scale))
		} else {
			rat.Quo(rat, new(big.Rat).SetInt(scale))
		}
		pos += m
	}

	return rationalFromRat(rat), pos, nil
}

// scanExponent matches [eE][+-]?[0-9]+ at the start of text. A bare "e" with
// no following digits is not an exponent, so "2e" scans as the integer 2.
func scanExponent(text string) (exp int, n int, ok bool) {
	if len(text) < 2 || (text[0] != 'e' && text[0] != 'E') {
		return 0, 0, false
	}
	pos := 1
	if text[pos] == '+' || text[pos] == '-' {
		pos++
	}
	start := pos
	for pos < len(text) && isDigit(text[pos]) {
		pos++
	}
	if pos == start {
		return 0, 0, false
	}
	exp, err := strconv.Atoi(text[1:pos])
	if err != nil {
		// too many digits to fit an int; saturate past the cap
		if text[1] == '-' {
			return -maxExponent - 1, pos, true
		}
		return maxExponent + 1, pos, true
	}
	return exp, pos, true
}

// decimalToRat converts a decimal literal to an exact rational through a
// fixed 10-fractional-digit rendering of the host float. The truncation is
// the numeric model's deliberate precision bound: the float is formatted
// with exactly ten digits after the point, trailing zeros are stripped, and
// the remaining digits become the fraction.
func decimalToRat(s string) *big.Rat {
	f, _ := strconv.ParseFloat(s, 64)
	neg := math.Signbit(f)
	text := strconv.FormatFloat(math.Abs(f), 'f', 10, 64)

	intPart, fracPart, _ := strings.Cut(text, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	num, _ := new(big.Int).SetString(intPart, 10)
	rat := new(big.Rat)
	if fracPart == "" {
		rat.SetInt(num)
	} else {
		den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
		frac, _ := new(big.Int).SetString(fracPart, 10)
		num.Mul(num, den)
		num.Add(num, frac)
		rat.SetFrac(num, den)
	}
	if neg {
		rat.Neg(rat)
	}
	return rat
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func ratAdd(a, b *big.Rat) (*big.Rat, error) { return new(big.Rat).Add(a, b), nil }
func ratSub(a, b *big.Rat) (*big.Rat, error) { return new(big.Rat).Sub(a, b), nil }
func ratMul(a, b *big.Rat) (*big.Rat, error) { return new(big.Rat).Mul(a, b), nil }

func ratDiv(a, b *big.Rat) (*big.Rat, error) {
	if b.Sign() == 0 {
		return nil, fmt.Errorf("%w: %v div 0", errDivisionByZero, a.RatString())
	}
	return new(big.Rat).Quo(a, b), nil
}

// ratPow raises a to an integer power. The exponent must be an
// integer-valued rational with magnitude at most maxExponent; a negative
// exponent inverts the base first.
func ratPow(a, b *big.Rat) (*big.Rat, error) {
	if !b.IsInt() {
		return nil, fmt.Errorf("%w: pow requires an integer exponent, got %v", errType, b.RatString())
	}
	if !b.Num().IsInt64() {
		return nil, fmt.Errorf("%w: exponent %v", errExponentOutOfRange, b.Num())
	}
	n := b.Num().Int64()
	if n > maxExponent || n < -maxExponent {
		return nil, fmt.Errorf("%w: exponent %v (max %v)", errExponentTooLarge, n, maxExponent)
	}
	base := a
	if n < 0 {
		if a.Sign() == 0 {
			return nil, fmt.Errorf("%w: 0 pow %v", errDivisionByZero, n)
		}
		base = new(big.Rat).Inv(a)
		n = -n
	}
	exp := big.NewInt(n)
	num := new(big.Int).Exp(base.Num(), exp, nil)
	den := new(big.Int).Exp(base.Denom(), exp, nil)
	return new(big.Rat).SetFrac(num, den), nil
}
