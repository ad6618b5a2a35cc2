package main

import (
	"fmt"
	"strings"
)

// scanner performs the single left-to-right pass that turns source text into
// tokens. It needs the owning Interp for the builtin trie and for
// longest-prefix matching of user-defined words.
type scanner struct {
	in  *Interp
	src string
	pos int
}

func (in *Interp) tokenize(src string) ([]token, error) {
	sc := scanner{in: in, src: src}
	return sc.scan()
}

// scan applies the tokenization rules in priority order at each position:
// whitespace, comment or global-scope prefix, text literal, vector literal,
// map/reduce scope prefix, numeric literal, reserved word, builtin word,
// user word. Anything else is an unknown token.
func (sc *scanner) scan() ([]token, error) {
	var tokens []token
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]

		if isSpace(c) {
			sc.pos++
			continue
		}

		// '#' opens a line comment unless a resolvable word follows
		// immediately, in which case it is the global-scope prefix.
		if c == '#' {
			if name, ok := sc.matchWord(sc.src[sc.pos+1:]); ok {
				tokens = append(tokens, wordToken(name, scopeGlobal))
				sc.pos += 1 + len(name)
				continue
			}
			for sc.pos < len(sc.src) && sc.src[sc.pos] != '\n' {
				sc.pos++
			}
			continue
		}

		if c == '\'' {
			text, err := sc.scanText()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, litToken(text))
			continue
		}

		if c == '[' {
			vec, err := sc.scanVector()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, litToken(vec))
			continue
		}

		if c == '@' || c == '*' {
			s := scopeMap
			if c == '*' {
				s = scopeReduce
			}
			name, ok := sc.matchWord(sc.src[sc.pos+1:])
			if !ok {
				return nil, fmt.Errorf("%w: %q at position %v is not followed by a word", errUnknownToken, string(c), sc.pos)
			}
			tokens = append(tokens, wordToken(name, s))
			sc.pos += 1 + len(name)
			continue
		}

		if val, n, err := scanNumber(sc.src[sc.pos:]); err != nil {
			return nil, err
		} else if n > 0 {
			tokens = append(tokens, litToken(val))
			sc.pos += n
			continue
		}

		if lit, n := scanReserved(sc.src[sc.pos:]); n > 0 {
			tokens = append(tokens, litToken(lit))
			sc.pos += n
			continue
		}

		if name, ok := sc.matchWord(sc.src[sc.pos:]); ok {
			tokens = append(tokens, wordToken(name, scopeLocal))
			sc.pos += len(name)
			continue
		}

		return nil, fmt.Errorf("%w at position %v: %q", errUnknownToken, sc.pos, string(c))
	}
	return tokens, nil
}

// scanText consumes a 'quoted' text literal, cursor on the opening quote.
func (sc *scanner) scanText() (Text, error) {
	end := strings.IndexByte(sc.src[sc.pos+1:], '\'')
	if end < 0 {
		return "", fmt.Errorf("%w starting at position %v", errUnterminatedString, sc.pos)
	}
	text := Text(sc.src[sc.pos+1 : sc.pos+1+end])
	sc.pos += end + 2
	return text, nil
}

// scanVector consumes a bracketed vector literal, cursor on the opening
// bracket. The bracketed body is tokenized by structural recursion on the
// same algorithm; embedded word references degrade to Text holding just the
// word's name, discarding any scope prefix.
func (sc *scanner) scanVector() (Vector, error) {
	depth := 0
	end := -1
	for i := sc.pos; i < len(sc.src); i++ {
		switch sc.src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("%w starting at position %v", errUnterminatedVector, sc.pos)
	}

	inner := strings.TrimSpace(sc.src[sc.pos+1 : end])
	sc.pos = end + 1
	if inner == "" {
		return Vector{}, nil
	}

	tokens, err := sc.in.tokenize(inner)
	if err != nil {
		return nil, err
	}
	vec := make(Vector, 0, len(tokens))
	for _, tok := range tokens {
		if tok.lit != nil {
			vec = append(vec, tok.lit)
		} else {
			vec = append(vec, Text(tok.word))
		}
	}
	return vec, nil
}

// matchWord resolves the longest word prefixing text: builtins take
// precedence over user words. No tie-break is needed between user words of
// equal length, since two distinct words of the same length cannot both
// prefix the same text.
func (sc *scanner) matchWord(text string) (string, bool) {
	if name, ok := sc.in.builtins.longestMatch(text); ok {
		return name, true
	}
	longest := ""
	for word := range sc.in.dict {
		if len(word) > len(longest) && strings.HasPrefix(text, word) {
			longest = word
		}
	}
	return longest, longest != ""
}

func scanReserved(text string) (Value, int) {
	switch {
	case strings.HasPrefix(text, "true"):
		return Boolean(true), 4
	case strings.HasPrefix(text, "false"):
		return Boolean(false), 5
	case strings.HasPrefix(text, "nil"):
		return Nil{}, 3
	}
	return nil, 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
