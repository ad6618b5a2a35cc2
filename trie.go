package main

// trie is a prefix tree over the fixed builtin vocabulary, supporting
// longest-prefix lookup during tokenization. Nodes live in an arena and
// address each other by index, so the tree is a single allocation-friendly
// slice rather than nested maps. The trie is immutable after construction;
// user-defined words never enter it.
type trie struct {
	nodes []trieNode
}

type trieNode struct {
	next map[byte]int32
	word bool
}

func newTrie(words ...string) *trie {
	t := &trie{nodes: make([]trieNode, 1, 64)}
	for _, word := range words {
		t.insert(word)
	}
	return t
}

func (t *trie) insert(word string) {
	at := int32(0)
	for i := 0; i < len(word); i++ {
		c := word[i]
		next, ok := t.nodes[at].next[c]
		if !ok {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, trieNode{})
			if t.nodes[at].next == nil {
				t.nodes[at].next = make(map[byte]int32)
			}
			t.nodes[at].next[c] = next
		}
		at = next
	}
	t.nodes[at].word = true
}

// longestMatch walks text from its start and returns the longest registered
// word that prefixes it, or false when no registered word does.
func (t *trie) longestMatch(text string) (string, bool) {
	at := int32(0)
	longest := 0
	for i := 0; i < len(text); i++ {
		next, ok := t.nodes[at].next[text[i]]
		if !ok {
			break
		}
		at = next
		if t.nodes[at].word {
			longest = i + 1
		}
	}
	if longest == 0 {
		return "", false
	}
	return text[:longest], true
}
