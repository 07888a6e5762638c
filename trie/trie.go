// Package trie is the prefix tree used to guide the board search. Each edge
// is labelled with a tile unit: usually one letter, but a dictionary may be
// loaded with combined tiles such as "qu" as single edges.
package trie

import (
	"slices"
	"unicode/utf8"
)

// A Node is one prefix state. The root is the empty prefix.
type Node struct {
	terminal bool
	children map[string]*Node
}

func New() *Node {
	return &Node{}
}

// Insert adds word one rune per edge. Inserting a word twice changes
// nothing. The empty word is ignored so the root never becomes terminal.
func (n *Node) Insert(word string) {
	if word == "" {
		return
	}
	units := make([]string, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		units = append(units, string(r))
	}
	n.insert(units)
}

// InsertUnits adds a word that has already been split into edge labels,
// e.g. ["qu", "i", "t"]. Empty labels are skipped.
func (n *Node) InsertUnits(units []string) {
	units = slices.DeleteFunc(slices.Clone(units), func(u string) bool { return u == "" })
	if len(units) == 0 {
		return
	}
	n.insert(units)
}

func (n *Node) insert(units []string) {
	if len(units) == 0 {
		n.terminal = true
		return
	}
	child, ok := n.children[units[0]]
	if !ok {
		if n.children == nil {
			n.children = make(map[string]*Node)
		}
		child = &Node{}
		n.children[units[0]] = child
	}
	child.insert(units[1:])
}

// InsertAll inserts every word; order does not matter.
func (n *Node) InsertAll(words []string) {
	for _, w := range words {
		n.Insert(w)
	}
}

// Child returns the node reached by the edge labelled letter, or nil.
func (n *Node) Child(letter string) *Node {
	return n.children[letter]
}

// Descend follows label from n. An edge with exactly that label is taken
// if there is one; otherwise a multi-letter label is followed one rune per
// edge, so a "qu" tile still matches a dictionary built letter by letter.
// Use Branches when both kinds of edge may be present.
func (n *Node) Descend(label string) *Node {
	br := n.Branches(label)
	if br[0] != nil {
		return br[0]
	}
	return br[1]
}

// Branches returns the node reached by the edge labelled exactly label, and
// the node reached by following a multi-letter label one rune per edge.
// Either may be nil. A trie holding both "qu"+"ad" and "q"+"u"+"it" needs
// both to find every word.
func (n *Node) Branches(label string) [2]*Node {
	var br [2]*Node
	br[0] = n.children[label]
	if utf8.RuneCountInString(label) < 2 {
		return br
	}
	cur := n
	for _, r := range label {
		cur = cur.children[string(r)]
		if cur == nil {
			return br
		}
	}
	br[1] = cur
	return br
}

// IsTerminal is true when the prefix ending here is a complete word.
func (n *Node) IsTerminal() bool {
	return n.terminal
}

// Contains reports whether word, read one rune per edge, is in the trie.
func (n *Node) Contains(word string) bool {
	if word == "" {
		return false
	}
	cur := n.Descend(word)
	return cur != nil && cur.terminal
}

// ContainsUnits reports whether the word spelled by units, one edge per
// unit, is in the trie.
func (n *Node) ContainsUnits(units []string) bool {
	if len(units) == 0 {
		return false
	}
	cur := n
	for _, u := range units {
		cur = cur.children[u]
		if cur == nil {
			return false
		}
	}
	return cur.terminal
}

// NumWords counts the terminal nodes at or below n.
func (n *Node) NumWords() int {
	count := 0
	if n.terminal {
		count++
	}
	for _, c := range n.children {
		count += c.NumWords()
	}
	return count
}

// Words returns every word at or below n, sorted.
func (n *Node) Words() []string {
	var words []string
	n.walk("", func(w string) {
		words = append(words, w)
	})
	slices.Sort(words)
	return words
}

func (n *Node) walk(prefix string, fn func(string)) {
	if n.terminal {
		fn(prefix)
	}
	for label, c := range n.children {
		c.walk(prefix+label, fn)
	}
}
