package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenStrings(t *testing.T, in *Interp, src string) []string {
	t.Helper()
	tokens, err := in.tokenize(src)
	require.NoError(t, err)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []string
	}{
		{"words and numbers", "2 3 add", []string{"2", "3", "add"}},
		{"fraction literal", "1/2 print", []string{"1/2", "print"}},
		{"reserved words", "true false nil", []string{"true", "false", "nil"}},
		{"no space needed between literals", "truefalse", []string{"true", "false"}},
		{"number ends at word", "3add", []string{"3", "add"}},
		{"adjacent words split longest-first", "adddup", []string{"add", "dup"}},
		{"text literal", "'hello world' print", []string{"'hello world'", "print"}},
		{"empty text", "''", []string{"''"}},
		{"nested vector", "[1 [2 3] 'x'] dup", []string{"[1 [2 3] 'x']", "dup"}},
		{"empty vector", "[ ]", []string{"[]"}},
		{"words degrade to text in vectors", "[1 add @dup]", []string{"[1 'add' 'dup']"}},
		{"scope prefixes", "@dup *add #add", []string{"@dup", "*add", "#add"}},
		{"comment to end of line", "# a comment\n42", []string{"42"}},
		{"hash word is global scope", "#add 1", []string{"#add", "1"}},
		{"trailing comment", "1 2 #!", []string{"1", "2"}},
		{"whitespace forms", "\t1\r\n 2 \v3", []string{"1", "2", "3"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenStrings(t, New(), tc.src))
		})
	}
}

func TestTokenize_userWords(t *testing.T) {
	in := New()
	_, err := in.Execute("[1] 'do' def [2] 'dot' def")
	require.NoError(t, err)

	// longest user word wins, and scope prefixes resolve user words too
	assert.Equal(t, []string{"dot", "do"}, tokenStrings(t, in, "dot do"))
	assert.Equal(t, []string{"@dot", "*do", "#do"}, tokenStrings(t, in, "@dot *do #do"))
}

func TestTokenize_errors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		src     string
		wantErr error
	}{
		{"unterminated text", "'unterminated", errUnterminatedString},
		{"unterminated vector", "[1 2", errUnterminatedVector},
		{"unterminated nested vector", "[1 [2]", errUnterminatedVector},
		{"stray symbol", "2 $", errUnknownToken},
		{"map prefix without word", "@5", errUnknownToken},
		{"bare reduce prefix", "*", errUnknownToken},
		{"unknown name", "bogus", errUnknownToken},
		{"partial builtin", "len", errUnknownToken},
		{"bad number in vector", "[1/0]", errDivisionByZero},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().tokenize(tc.src)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTokenize_partialBuiltinPrefix(t *testing.T) {
	// len matches the builtin le, leaving an unresolvable n behind
	tokens, err := New().tokenize("len")
	assert.ErrorIs(t, err, errUnknownToken)
	assert.Nil(t, tokens)
}
