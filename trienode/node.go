/*
Package trienode provides Node, the trie node used by package trie and
walked directly by package rule during hint generation.

Each node carries a code-point key, a terminal flag, a non-owning
parent back-link used only to reconstruct paths (never for traversal
that could outlive the owning trie), and an OrderedChildMap of its
children keyed by code point.
*/
package trienode

import "github.com/Zubayear/pisownia/ordmap"

// RootKey is the sentinel key carried by a trie's root node.
const RootKey = rune(0)

// Node is one node of a trie. The zero value is not usable; construct
// with New.
type Node struct {
	key      rune
	isWord   bool
	parent   *Node
	children *ordmap.OrderedChildMap[rune, *Node]
}

// New creates a detached node for the given key, with IsWord false and
// no children.
func New(key rune) *Node {
	return &Node{
		key:      key,
		children: ordmap.New[rune, *Node](),
	}
}

// Key returns the code point this node represents.
func (n *Node) Key() rune {
	return n.key
}

// IsWord reports whether a word terminates at this node.
func (n *Node) IsWord() bool {
	return n.isWord
}

// SetIsWord sets the terminal flag.
func (n *Node) SetIsWord(isWord bool) {
	n.isWord = isWord
}

// Parent returns the non-owning back-link to this node's parent, or nil
// for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return n.children.Size()
}

// ChildAt returns the i-th child in key order, for ordered iteration
// and serialization. ok is false if i is out of range.
func (n *Node) ChildAt(i int) (child *Node, ok bool) {
	_, child, ok = n.children.GetByIndex(i)
	return child, ok
}

// GetChild returns the existing child keyed by key, if any.
func (n *Node) GetChild(key rune) (*Node, bool) {
	return n.children.Find(key)
}

// AddChild is idempotent: if a child keyed by key already exists, the
// call is a no-op and returns the existing child; otherwise it creates
// one, links its parent to n, and returns it.
func (n *Node) AddChild(key rune) *Node {
	if existing, ok := n.children.Find(key); ok {
		return existing
	}
	child := New(key)
	child.parent = n
	n.children.Insert(key, child)
	return child
}

// RemoveChild deletes the child keyed by key, if present. It returns
// whether a child was removed.
func (n *Node) RemoveChild(key rune) bool {
	return n.children.Remove(key)
}

// HasWord walks prefix from this node and reports whether the walk
// succeeds and the terminal node is marked as a word.
func (n *Node) HasWord(prefix []rune) bool {
	cur := n
	for _, r := range prefix {
		child, ok := cur.GetChild(r)
		if !ok {
			return false
		}
		cur = child
	}
	return cur.isWord
}

// Walk follows prefix from this node, returning the reached node and
// whether every step succeeded.
func (n *Node) Walk(prefix []rune) (*Node, bool) {
	cur := n
	for _, r := range prefix {
		child, ok := cur.GetChild(r)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// PathToRoot returns the sequence of keys from this node up to (but
// excluding) the root, in root-to-node order: the word spelled out by
// walking from the root down to this node.
func (n *Node) PathToRoot() []rune {
	var depth int
	for p := n; p.parent != nil; p = p.parent {
		depth++
	}
	path := make([]rune, depth)
	cur := n
	for i := depth - 1; i >= 0; i-- {
		path[i] = cur.key
		cur = cur.parent
	}
	return path
}

// Prunable reports whether this node is a candidate for removal during
// trie delete's upward pass: not the root, not a word, and childless.
func (n *Node) Prunable() bool {
	return n.parent != nil && !n.isWord && n.ChildCount() == 0
}
