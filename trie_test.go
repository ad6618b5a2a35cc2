package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrie_longestMatch(t *testing.T) {
	tr := newTrie(builtinWords...)

	for _, tc := range []struct {
		in   string
		want string
	}{
		{"add", "add"},
		{"add more", "add"},
		{"adddup", "add"},

		// le is a word and a prefix of length; the longest full word wins,
		// and a partial walk past the last word falls back to it
		{"le", "le"},
		{"len", "le"},
		{"length", "length"},
		{"lengthy", "length"},

		{"d", ""},
		{"dro", ""},
		{"xyz", ""},
		{"", ""},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := tr.longestMatch(tc.in)
			assert.Equal(t, tc.want != "", ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTrie_insert(t *testing.T) {
	tr := newTrie("a")
	tr.insert("ab")
	tr.insert("abc")

	got, ok := tr.longestMatch("abcd")
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	got, ok = tr.longestMatch("ab")
	assert.True(t, ok)
	assert.Equal(t, "ab", got)
}
