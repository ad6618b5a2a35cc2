package main

import "errors"

// Failure kinds surfaced by Execute. Each abort carries one of these
// sentinels (wrapped with context), so callers and tests can match with
// errors.Is.
var (
	errUnterminatedString = errors.New("unterminated string")
	errUnterminatedVector = errors.New("unterminated vector")
	errUnknownToken       = errors.New("unknown token")
	errStackUnderflow     = errors.New("stack underflow")
	errType               = errors.New("type error")
	errDivisionByZero     = errors.New("division by zero")
	errExponentTooLarge   = errors.New("exponent too large")
	errExponentOutOfRange = errors.New("exponent out of range")
	errInvalidCount       = errors.New("invalid count")
	errIndexOutOfBounds   = errors.New("index out of bounds")
	errEmptyReduce        = errors.New("cannot reduce empty vector")
	errEmptyStack         = errors.New("stack is empty")
	errUnknownWord        = errors.New("unknown word")
	errStateLoad          = errors.New("state deserialization failed")
	errTooDeep            = errors.New("recursion too deep")
)
