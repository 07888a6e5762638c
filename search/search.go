// Package search finds every dictionary word that can be traced on a board
// through adjacent tiles, never using a tile twice in one word.
package search

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/domino14/boggle/board"
	"github.com/domino14/boggle/trie"
)

// A Frontier holds the tiles used by the path currently being explored.
type Frontier map[board.Tile]struct{}

func (f Frontier) has(t board.Tile) bool {
	_, ok := f[t]
	return ok
}

// visit walks the board depth-first from the last tile of path, with node
// the trie state reached by spelling path. fn is called with the path every
// time node is terminal. Every tile pushed onto the frontier is popped
// before visit returns. visit returns false as soon as fn does, or once
// done is closed; a nil done never closes.
func visit(b *board.Board, node *trie.Node, path []board.Tile, frontier Frontier,
	done <-chan struct{}, fn func(path []board.Tile) bool) bool {

	select {
	case <-done:
		return false
	default:
	}
	if node.IsTerminal() && !fn(path) {
		return false
	}
	for _, nb := range b.Neighbors(path[len(path)-1]) {
		letter := b.Letter(nb)
		if letter == "" || frontier.has(nb) {
			continue
		}
		for _, child := range node.Branches(letter) {
			if child == nil {
				continue
			}
			frontier[nb] = struct{}{}
			more := visit(b, child, append(path, nb), frontier, done, fn)
			delete(frontier, nb)
			if !more {
				return false
			}
		}
	}
	return true
}

func spell(b *board.Board, path []board.Tile) string {
	var sb strings.Builder
	for _, t := range path {
		sb.WriteString(b.Letter(t))
	}
	return sb.String()
}

// Suffixes lazily yields every word ending reachable from tile, given that
// the word so far has brought the trie to node. A terminal node yields "".
// Each suffix is the concatenation of the tiles walked after tile. The
// frontier must already hold tile; it is left as it was found, even if the
// caller stops early.
func Suffixes(b *board.Board, node *trie.Node, tile board.Tile, frontier Frontier) iter.Seq[string] {
	return func(yield func(string) bool) {
		visit(b, node, []board.Tile{tile}, frontier, nil, func(path []board.Tile) bool {
			return yield(spell(b, path[1:]))
		})
	}
}

// Paths lazily yields the tile path of every word that starts on tile. The
// yielded slice is only valid until the next iteration.
func Paths(b *board.Board, dict *trie.Node, tile board.Tile) iter.Seq[[]board.Tile] {
	return func(yield func([]board.Tile) bool) {
		letter := b.Letter(tile)
		if letter == "" {
			return
		}
		for _, node := range dict.Branches(letter) {
			if node == nil {
				continue
			}
			if !visit(b, node, []board.Tile{tile}, Frontier{tile: {}}, nil, yield) {
				return
			}
		}
	}
}

// collect adds the words starting on tile to words. It gives up when done
// is closed.
func collect(b *board.Board, dict *trie.Node, tile board.Tile, words map[string]struct{},
	done <-chan struct{}) {

	letter := b.Letter(tile)
	if letter == "" {
		return
	}
	for _, node := range dict.Branches(letter) {
		if node == nil {
			continue
		}
		visit(b, node, []board.Tile{tile}, Frontier{tile: {}}, done, func(path []board.Tile) bool {
			words[spell(b, path)] = struct{}{}
			return true
		})
	}
}

// AllWords returns the set of dictionary words on the board.
func AllWords(b *board.Board, dict *trie.Node) map[string]struct{} {
	words := make(map[string]struct{})
	for _, t := range b.Tiles() {
		collect(b, dict, t, words, nil)
	}
	return words
}

// WordsAtLeast returns the words on the board with at least minLength
// letters, sorted.
func WordsAtLeast(b *board.Board, dict *trie.Node, minLength int) []string {
	return FilterLength(AllWords(b, dict), minLength)
}

// FilterLength keeps the words with at least minLength letters, sorted.
func FilterLength(words map[string]struct{}, minLength int) []string {
	kept := lo.Filter(lo.Keys(words), func(w string, _ int) bool {
		return utf8.RuneCountInString(w) >= minLength
	})
	slices.Sort(kept)
	return kept
}

// FindPath returns the first path found that spells word, or nil if the
// word is not on the board or not in the dictionary.
func FindPath(b *board.Board, dict *trie.Node, word string) []board.Tile {
	for _, t := range b.Tiles() {
		for path := range Paths(b, dict, t) {
			if spell(b, path) == word {
				return slices.Clone(path)
			}
		}
	}
	return nil
}

// AllPaths maps every word on the board to the first path found for it.
func AllPaths(b *board.Board, dict *trie.Node) map[string][]board.Tile {
	paths := make(map[string][]board.Tile)
	for _, t := range b.Tiles() {
		for path := range Paths(b, dict, t) {
			w := spell(b, path)
			if _, ok := paths[w]; !ok {
				paths[w] = slices.Clone(path)
			}
		}
	}
	return paths
}
