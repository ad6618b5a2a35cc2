package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
)

// Session state is persisted as a JSON document holding the stack, the user
// dictionary, and the output log. Dictionary bodies are sequences of either
// literal values or compiled word calls, both carried by the same tagged
// encoding.
type savedState struct {
	Stack  []savedValue            `json:"stack"`
	Words  map[string][]savedValue `json:"words,omitempty"`
	Output []string                `json:"output,omitempty"`
}

// savedValue is a tagged encoding of a Value, or (inside word bodies only)
// of a compiled call with tag "word". Rationals are carried as their
// canonical n/d string so arbitrary precision survives the round trip.
type savedValue struct {
	T    string       `json:"t"`
	Rat  string       `json:"rat,omitempty"`
	Text string       `json:"text,omitempty"`
	Bool bool         `json:"bool,omitempty"`
	Vec  []savedValue `json:"vec,omitempty"`
}

// SaveState writes the interpreter's session state to w.
func (in *Interp) SaveState(w io.Writer) error {
	state := savedState{
		Stack:  encodeValues(in.stack),
		Output: in.out,
	}
	if len(in.dict) > 0 {
		state.Words = make(map[string][]savedValue, len(in.dict))
		for name, body := range in.dict {
			saved := make([]savedValue, len(body))
			for i, tok := range body {
				if tok.lit != nil {
					saved[i] = encodeValue(tok.lit)
				} else {
					saved[i] = savedValue{T: "word", Text: tok.word}
				}
			}
			state.Words[name] = saved
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}

// LoadState replaces the interpreter's stack, dictionary, and output log
// with state previously written by SaveState. Any decoding problem fails
// with a state deserialization error and leaves the interpreter unchanged.
func (in *Interp) LoadState(r io.Reader) error {
	var state savedState
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return fmt.Errorf("%w: %v", errStateLoad, err)
	}

	stack, err := decodeValues(state.Stack)
	if err != nil {
		return err
	}
	dict := make(map[string][]token, len(state.Words))
	for name, saved := range state.Words {
		tokens := make([]token, len(saved))
		for i, sv := range saved {
			if sv.T == "word" {
				tokens[i] = wordToken(sv.Text, scopeLocal)
				continue
			}
			v, err := decodeValue(sv)
			if err != nil {
				return fmt.Errorf("word %q: %w", name, err)
			}
			tokens[i] = litToken(v)
		}
		dict[name] = tokens
	}

	in.stack = stack
	in.dict = dict
	in.out = state.Output
	return nil
}

func encodeValues(values []Value) []savedValue {
	out := make([]savedValue, len(values))
	for i, v := range values {
		out[i] = encodeValue(v)
	}
	return out
}

func encodeValue(v Value) savedValue {
	switch val := v.(type) {
	case Rational:
		return savedValue{T: "rat", Rat: val.rat.RatString()}
	case Text:
		return savedValue{T: "text", Text: string(val)}
	case Boolean:
		return savedValue{T: "bool", Bool: bool(val)}
	case Vector:
		return savedValue{T: "vec", Vec: encodeValues(val)}
	default:
		return savedValue{T: "nil"}
	}
}

func decodeValues(saved []savedValue) ([]Value, error) {
	out := make([]Value, len(saved))
	for i, sv := range saved {
		v, err := decodeValue(sv)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeValue(sv savedValue) (Value, error) {
	switch sv.T {
	case "rat":
		rat, ok := new(big.Rat).SetString(sv.Rat)
		if !ok {
			return nil, fmt.Errorf("%w: bad rational %q", errStateLoad, sv.Rat)
		}
		return rationalFromRat(rat), nil
	case "text":
		return Text(sv.Text), nil
	case "bool":
		return Boolean(sv.Bool), nil
	case "nil":
		return Nil{}, nil
	case "vec":
		vec, err := decodeValues(sv.Vec)
		if err != nil {
			return nil, err
		}
		return Vector(vec), nil
	}
	return nil, fmt.Errorf("%w: unknown value tag %q", errStateLoad, sv.T)
}
