/*
Package wordlist implements the word-list sink that package trie's
enumeration and package dictionary's Hints write into.

Sink is the external contract (add/size/get/sort); the core never
dictates internal storage for it. SliceSink, the concrete
implementation this module ships, keeps its words in a plain []string:
Add is an O(1) amortized append and Get is O(1) direct indexing, which
is all the contract asks for and all a one-shot enumeration or hint
query needs.
*/
package wordlist

import (
	"sort"

	"github.com/Zubayear/pisownia/locale"
)

// Sink receives words produced by enumeration or hint generation.
type Sink interface {
	// Add appends a copy of word.
	Add(word string)
	// Size returns the number of words added so far.
	Size() int
	// Get returns the word at position i, and whether i was in range.
	Get(i int) (string, bool)
	// Sort orders the words by locale collation, stably.
	Sort()
}

// SliceSink is the default Sink implementation.
type SliceSink struct {
	words    []string
	comparer *locale.Comparer
}

// NewSliceSink creates an empty SliceSink that collates with cmp. A nil
// cmp uses locale.Default.
func NewSliceSink(cmp *locale.Comparer) *SliceSink {
	if cmp == nil {
		cmp = locale.Default
	}
	return &SliceSink{comparer: cmp}
}

// Add implements Sink.
//
// Time Complexity: O(1) amortized
func (s *SliceSink) Add(word string) {
	s.words = append(s.words, word)
}

// Size implements Sink.
func (s *SliceSink) Size() int {
	return len(s.words)
}

// Get implements Sink.
//
// Time Complexity: O(1)
func (s *SliceSink) Get(i int) (string, bool) {
	if i < 0 || i >= len(s.words) {
		return "", false
	}
	return s.words[i], true
}

// Words returns a snapshot slice of every word added so far, in
// current order.
func (s *SliceSink) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Sort implements Sink: stable locale-collation order.
func (s *SliceSink) Sort() {
	sort.SliceStable(s.words, func(i, j int) bool {
		return s.comparer.Less(s.words[i], s.words[j])
	})
}
