/*
Package searchstate provides State, the ephemeral search node that
package hintgen threads through its bounded-cost breadth-first search,
and package rule consumes and produces while applying a transformation
rule.

A State names a position in the trie, an optional split anchor (the
terminal node of the first word of a two-word hint), the unconsumed
tail of the query word, the cost paid so far, and whether the state may
still be greedily descended without paying further cost.
*/
package searchstate

import "github.com/Zubayear/pisownia/trienode"

// State is a point in the hint search.
//
// Suffix is represented as an offset into Word rather than a fresh
// slice per state, the way the reference implementation keeps a
// pointer into the query word's tail plus a length: every State
// derived from the same query shares the one backing array.
type State struct {
	Node       *trienode.Node
	Prev       *trienode.Node // nil if this is not (yet) a split hint
	Word       []rune
	Pos        int // Suffix is Word[Pos:]
	Cost       int
	Expandable bool
}

// New constructs the initial state for a query word: positioned at
// root, no split anchor, the full word unconsumed, zero cost, and
// expandable.
func New(root *trienode.Node, word []rune) *State {
	return &State{Node: root, Word: word, Pos: 0, Cost: 0, Expandable: true}
}

// Suffix returns the unconsumed tail of the query word.
func (s *State) Suffix() []rune {
	return s.Word[s.Pos:]
}

// SuffixLen returns the length of the unconsumed tail.
func (s *State) SuffixLen() int {
	return len(s.Word) - s.Pos
}

// IsHint reports whether this state is a completed hint: the current
// node marks a word and the query word has been fully consumed.
func (s *State) IsHint() bool {
	return s.SuffixLen() == 0 && s.Node.IsWord()
}

// Advance returns a copy of s moved to node, with the suffix advanced
// by delta code points and cost increased by addedCost. expandable
// controls whether the new state may still be greedily descended.
func (s *State) Advance(node *trienode.Node, delta, addedCost int, expandable bool) *State {
	return &State{
		Node:       node,
		Prev:       s.Prev,
		Word:       s.Word,
		Pos:        s.Pos + delta,
		Cost:       s.Cost + addedCost,
		Expandable: expandable,
	}
}

// Split returns a copy of s that anchors a two-word hint at firstWord
// (the just-completed first word) and resumes the search at root for
// the second word, with the suffix advanced by delta and cost
// increased by addedCost.
func (s *State) Split(root, firstWord *trienode.Node, delta, addedCost int) *State {
	return &State{
		Node:       root,
		Prev:       firstWord,
		Word:       s.Word,
		Pos:        s.Pos + delta,
		Cost:       s.Cost + addedCost,
		Expandable: true,
	}
}

// FullKey is the equivalence relation used to deduplicate the search
// frontier: two states with an identical observable future collapse.
type FullKey struct {
	Node       *trienode.Node
	Pos        int
	Prev       *trienode.Node
	Expandable bool
}

// Full returns s's frontier-dedup key.
func (s *State) Full() FullKey {
	return FullKey{Node: s.Node, Pos: s.Pos, Prev: s.Prev, Expandable: s.Expandable}
}

// HintKey is the equivalence relation used to count unique completed
// hints: distinct derivations of the same underlying word collapse.
type HintKey struct {
	Node *trienode.Node
	Prev *trienode.Node
}

// Hint returns s's hint-uniqueness key.
func (s *State) Hint() HintKey {
	return HintKey{Node: s.Node, Prev: s.Prev}
}
