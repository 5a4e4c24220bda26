/*
Package trie provides Trie, a prefix tree keyed on Unicode code points,
with each node's children kept in code-point order. It supports the
following features:

  - Insert: Add a word to the trie in O(n) time, where n is the length of the word.
  - Has: Check if a word exists in the trie in O(n) time.
  - Delete: Remove a word, pruning now-useless nodes back toward the root in O(n) time.
  - Enumerate: Emit every stored word, in the order implied by child ordering.
  - Save / Load: A deterministic, lossless textual serialization.
  - Thread Safety: Public operations are guarded by a sync.RWMutex, matching
    the house style of this module's other composite types.

Use Cases:
  - Spell checking (the reason this package exists)
  - Autocomplete systems
  - Dictionary or prefix matching

Implementation Details:
  - Each node (package trienode) holds an OrderedChildMap of rune to *Node.
  - An `isWord` flag marks the end of a valid word.
  - Deletion walks the word recording a pruneTrail of (parent, key) pairs,
    then unwinds it from the deepest point, unlinking any node left with
    no children and no terminal flag until one survives.

Time Complexity:
  - Insert: O(n)
  - Has: O(n)
  - Delete: O(n)
  - Enumerate: O(total stored characters)
*/
package trie

import (
	"errors"
	"sync"

	"github.com/Zubayear/pisownia/ioadapt"
	"github.com/Zubayear/pisownia/locale"
	"github.com/Zubayear/pisownia/trienode"
	"github.com/Zubayear/pisownia/wordlist"
)

// ErrMalformed is returned by Load when the input is not the strict
// inverse of Save.
var ErrMalformed = errors.New("trie: malformed record")

// ErrWrite is returned by Save when the underlying sink reports a
// write failure.
var ErrWrite = errors.New("trie: write failed")

// InsertResult reports the outcome of Insert.
type InsertResult int

const (
	// Inserted indicates the word was not previously present.
	Inserted InsertResult = iota
	// AlreadyPresent indicates the word was already a complete entry.
	AlreadyPresent
)

// DeleteResult reports the outcome of Delete.
type DeleteResult int

const (
	// Deleted indicates the word was present and has been removed.
	Deleted DeleteResult = iota
	// NotPresent indicates the word was not a complete entry.
	NotPresent
)

// Trie is a prefix tree over Unicode code points whose children are
// kept in code-point order.
//
// The zero value is not usable; construct with New.
type Trie struct {
	mutex       sync.RWMutex
	root        *trienode.Node
	longestEver int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: trienode.New(trienode.RootKey)}
}

// Root exposes the trie's root node for read-only traversal by the
// rule engine. Callers must not mutate the returned node's structure
// directly.
func (t *Trie) Root() *trienode.Node {
	return t.root
}

// Insert adds word to the trie.
//
// Algorithm: walk/create one node per code point; mark the last node
// terminal if it was not already.
//
// Time Complexity: O(n), n = len(word)
func (t *Trie) Insert(word []rune) InsertResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	current := t.root
	for _, r := range word {
		current = current.AddChild(r)
	}

	if current.IsWord() {
		return AlreadyPresent
	}
	current.SetIsWord(true)
	if len(word) > t.longestEver {
		t.longestEver = len(word)
	}
	return Inserted
}

// Has reports whether word is a complete entry.
//
// Time Complexity: O(n), n = len(word)
func (t *Trie) Has(word []rune) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.root.HasWord(word)
}

// pathStep is one (parent, key) pair recorded while descending toward
// a word's terminal node, so Delete can unwind the same walk to prune
// dead nodes back toward the root.
type pathStep struct {
	node *trienode.Node
	key  rune
}

// pruneTrail is the descent recorded by Delete: pathStep entries in
// root-to-leaf order, one per code point of the deleted word.
type pruneTrail []pathStep

func (p *pruneTrail) push(node *trienode.Node, key rune) {
	*p = append(*p, pathStep{node: node, key: key})
}

// unwindPruning walks the trail backward from its deepest point,
// starting at the word's now-non-terminal final node. At each step it
// removes the child from its parent only if the node reached so far is
// prunable (not the root, not a word, and childless); it stops at the
// first node that survives that check.
func (p pruneTrail) unwindPruning(node *trienode.Node) {
	for i := len(p) - 1; i >= 0; i-- {
		if !node.Prunable() {
			return
		}
		step := p[i]
		step.node.RemoveChild(step.key)
		node = step.node
	}
}

// Delete removes word from the trie.
//
// Algorithm: walk the word, recording (parent, key) pairs into a
// pruneTrail as it descends; if the final node is not terminal, the
// word was not present. Otherwise clear the terminal flag and unwind
// the trail, unlinking any node that has become prunable (not the
// root, not a word, and childless) until one isn't.
//
// Time Complexity: O(n), n = len(word)
func (t *Trie) Delete(word []rune) DeleteResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	var trail pruneTrail
	current := t.root
	for _, r := range word {
		next, ok := current.GetChild(r)
		if !ok {
			return NotPresent
		}
		trail.push(current, r)
		current = next
	}

	if !current.IsWord() {
		return NotPresent
	}
	current.SetIsWord(false)
	trail.unwindPruning(current)

	return Deleted
}

// Enumerate emits every stored word exactly once, in the order implied
// by child-map iteration, into sink. It reuses a single rune buffer
// sized to the longest word ever inserted.
//
// Time Complexity: O(total stored characters)
func (t *Trie) Enumerate(sink wordlist.Sink) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	buf := make([]rune, t.longestEver+1)
	t.enumerate(t.root, buf, 0, sink)
}

func (t *Trie) enumerate(node *trienode.Node, buf []rune, depth int, sink wordlist.Sink) {
	for i := 0; i < node.ChildCount(); i++ {
		child, _ := node.ChildAt(i)
		buf[depth] = child.Key()
		if child.IsWord() {
			sink.Add(string(buf[:depth+1]))
		}
		t.enumerate(child, buf, depth+1, sink)
	}
}

// Save writes this trie as a depth-first pre-order dump of the root's
// children: for each child, its key, then '*' iff it is a word, then
// its sub-dump, then '^'; terminated by a single '\n'.
func (t *Trie) Save(sink ioadapt.Sink) error {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if err := t.saveNode(t.root, sink); err != nil {
		return err
	}
	if sink.Printf("\n") < 0 {
		return ErrWrite
	}
	return nil
}

func (t *Trie) saveNode(node *trienode.Node, sink ioadapt.Sink) error {
	for i := 0; i < node.ChildCount(); i++ {
		child, _ := node.ChildAt(i)
		if sink.Printf("%c", child.Key()) < 0 {
			return ErrWrite
		}
		if child.IsWord() && sink.Printf("*") < 0 {
			return ErrWrite
		}
		if err := t.saveNode(child, sink); err != nil {
			return err
		}
		if sink.Printf("^") < 0 {
			return ErrWrite
		}
	}
	return nil
}

// Load reads the strict inverse of Save from src. An unexpected '^'
// that would pop above the root, or a non-alphabetic code point in a
// key position, aborts the load and returns ErrMalformed; no partial
// trie is returned.
func Load(src ioadapt.Source) (*Trie, error) {
	t := New()
	node := t.root

	for {
		r, ok := src.Next()
		if !ok || r == '\n' {
			break
		}
		switch r {
		case '*':
			node.SetIsWord(true)
		case '^':
			parent := node.Parent()
			if parent == nil {
				return nil, ErrMalformed
			}
			node = parent
		default:
			if !locale.IsAlpha(r) {
				return nil, ErrMalformed
			}
			node = node.AddChild(r)
			if depth := len(node.PathToRoot()); depth > t.longestEver {
				t.longestEver = depth
			}
		}
	}

	return t, nil
}
