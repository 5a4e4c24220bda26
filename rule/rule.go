/*
Package rule provides Rule, the immutable transformation rule the hint
generator applies to walk a query word through the trie.

A rule's left and right sides are patterns: sequences of code points
where an ASCII digit 0-9 is a pattern variable (binding to whatever
code point occupied that position in the matched text) and any other
code point is a literal. A rule is legal only if the variables
appearing only on its right side (the "free variables") number at most
one, and a rule with both sides empty must carry the Split flag.
*/
package rule

import (
	"errors"
	"math"

	"github.com/Zubayear/pisownia/ioadapt"
	"github.com/Zubayear/pisownia/searchstate"
	"github.com/Zubayear/pisownia/trienode"
)

// Flag distinguishes the special application constraints a rule may
// carry.
type Flag int

const (
	// Normal rules carry no additional application constraint.
	Normal Flag = iota
	// Begin rules apply only when the search is still at its start:
	// no split anchor set, and positioned at the trie root.
	Begin
	// End rules produce only non-expandable successor states.
	End
	// Split rules apply only at an initial state and, on success,
	// anchor a two-word hint at the reached node.
	Split
)

// ErrMalformed is returned by Load when the input does not describe a
// well-formed rule record.
var ErrMalformed = errors.New("rule: malformed record")

// ErrWrite is returned by Save when the underlying sink reports a
// write failure.
var ErrWrite = errors.New("rule: write failed")

// Rule is immutable after construction.
type Rule struct {
	left  []rune
	right []rune
	cost  int
	flag  Flag
}

// New constructs a Rule. It rejects no input; call IsLegal separately
// to check legality.
func New(left, right []rune, cost int, flag Flag) *Rule {
	l := make([]rune, len(left))
	copy(l, left)
	r := make([]rune, len(right))
	copy(r, right)
	return &Rule{left: l, right: r, cost: cost, flag: flag}
}

// Left returns the rule's left pattern.
func (r *Rule) Left() []rune { return r.left }

// Right returns the rule's right pattern.
func (r *Rule) Right() []rune { return r.right }

// Cost returns the rule's cost.
func (r *Rule) Cost() int { return r.cost }

// FlagValue returns the rule's flag.
func (r *Rule) FlagValue() Flag { return r.flag }

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// varsOnlyInRight counts the number of distinct pattern variables that
// appear in right but never in left.
func (r *Rule) varsOnlyInRight() int {
	inLeft := [10]bool{}
	inRight := [10]bool{}
	for _, c := range r.left {
		if isDigit(c) {
			inLeft[c-'0'] = true
		}
	}
	for _, c := range r.right {
		if isDigit(c) {
			inRight[c-'0'] = true
		}
	}
	count := 0
	for i := 0; i < 10; i++ {
		if inRight[i] && !inLeft[i] {
			count++
		}
	}
	return count
}

// IsLegal reports whether this rule satisfies the two legality
// constraints: at most one free variable, and a Split flag whenever
// both sides are empty.
func (r *Rule) IsLegal() bool {
	if r.varsOnlyInRight() > 1 {
		return false
	}
	if len(r.left) == 0 && len(r.right) == 0 && r.flag != Split {
		return false
	}
	return true
}

// MatchesPrefix reports whether text is at least as long as left and
// every position of left matches: literals match the corresponding
// character of text, and variable positions are mutually consistent
// (the same digit binds the same character throughout left).
//
// isStart is accepted for interface symmetry with the reference
// implementation's call site, which computes it to later decide
// Begin/Split eligibility; that eligibility is enforced in Apply, so
// MatchesPrefix itself ignores isStart.
func (r *Rule) MatchesPrefix(isStart bool, text []rune) bool {
	_ = isStart
	if len(text) < len(r.left) {
		return false
	}
	var bound [10]rune
	var hasBound [10]bool
	for i, c := range r.left {
		if isDigit(c) {
			d := c - '0'
			if hasBound[d] {
				if bound[d] != text[i] {
					return false
				}
			} else {
				hasBound[d] = true
				bound[d] = text[i]
			}
			continue
		}
		if c != text[i] {
			return false
		}
	}
	return true
}

// Apply attempts to match this rule against state's unconsumed suffix
// and, on success, returns the resulting successor states (zero or
// more, per the free-variable fan-out). root is the dictionary trie's
// root, needed to anchor Split successors.
func (r *Rule) Apply(state *searchstate.State, root *trienode.Node) []*searchstate.State {
	if (r.flag == Begin || r.flag == Split) && (state.Prev != nil || state.Node != root) {
		return nil
	}

	suffix := state.Suffix()
	if len(suffix) < len(r.left) {
		return nil
	}

	var bound [10]rune
	var hasBound [10]bool
	for i, c := range r.left {
		if isDigit(c) {
			d := c - '0'
			if hasBound[d] {
				if bound[d] != suffix[i] {
					return nil
				}
			} else {
				hasBound[d] = true
				bound[d] = suffix[i]
			}
			continue
		}
		if c != suffix[i] {
			return nil
		}
	}

	reached := r.walkRight(state.Node, 0, bound, hasBound)
	if len(reached) == 0 {
		return nil
	}

	results := make([]*searchstate.State, 0, len(reached))
	if r.flag == Split {
		for _, n := range reached {
			if !n.IsWord() {
				continue
			}
			results = append(results, state.Split(root, n, len(r.left), r.cost))
		}
		if len(results) == 0 {
			return nil
		}
		return results
	}

	expandable := r.flag != End
	for _, n := range reached {
		results = append(results, state.Advance(n, len(r.left), r.cost, expandable))
	}
	return results
}

// walkRight walks the substituted right pattern from node, branching
// over every child at the one free-variable position (if any). Once
// the free variable is first bound (to whichever child the branch
// took), every later occurrence of the same digit in right must agree
// with that binding.
func (r *Rule) walkRight(node *trienode.Node, pos int, bound [10]rune, hasBound [10]bool) []*trienode.Node {
	if pos == len(r.right) {
		return []*trienode.Node{node}
	}

	c := r.right[pos]
	if isDigit(c) {
		d := c - '0'
		if hasBound[d] {
			child, ok := node.GetChild(bound[d])
			if !ok {
				return nil
			}
			return r.walkRight(child, pos+1, bound, hasBound)
		}
		// Free-variable position: branch over every child, binding the
		// digit to whichever child each branch takes. Any later
		// occurrence of the same digit sees hasBound[d] set and must
		// agree with this branch's choice.
		var out []*trienode.Node
		for i := 0; i < node.ChildCount(); i++ {
			child, _ := node.ChildAt(i)
			nb, nhb := bound, hasBound
			nb[d] = child.Key()
			nhb[d] = true
			out = append(out, r.walkRight(child, pos+1, nb, nhb)...)
		}
		return out
	}

	child, ok := node.GetChild(c)
	if !ok {
		return nil
	}
	return r.walkRight(child, pos+1, bound, hasBound)
}

// Save writes this rule as "left*right*cost*flag\n".
func (r *Rule) Save(sink ioadapt.Sink) error {
	if sink.Printf("%s*%s*%d*%d\n", string(r.left), string(r.right), r.cost, int(r.flag)) < 0 {
		return ErrWrite
	}
	return nil
}

// Load reads one rule record from src. An empty, non-decimal,
// negative, or overflowing numeric field aborts the load with
// ErrMalformed, as does an unexpected end of input mid-record.
func Load(src ioadapt.Source) (*Rule, error) {
	left, ok := readUntil(src, '*')
	if !ok {
		return nil, ErrMalformed
	}
	right, ok := readUntil(src, '*')
	if !ok {
		return nil, ErrMalformed
	}
	costField, ok := readUntil(src, '*')
	if !ok {
		return nil, ErrMalformed
	}
	cost, err := parseNonNegativeInt32(costField)
	if err != nil {
		return nil, err
	}
	flagField, ok := readUntil(src, '\n')
	if !ok {
		return nil, ErrMalformed
	}
	flagVal, err := parseNonNegativeInt32(flagField)
	if err != nil {
		return nil, err
	}
	if flagVal < int(Normal) || flagVal > int(Split) {
		return nil, ErrMalformed
	}

	return New(left, right, cost, Flag(flagVal)), nil
}

func readUntil(src ioadapt.Source, stop rune) ([]rune, bool) {
	var buf []rune
	for {
		r, ok := src.Next()
		if !ok {
			return nil, false
		}
		if r == stop {
			return buf, true
		}
		buf = append(buf, r)
	}
}

func parseNonNegativeInt32(field []rune) (int, error) {
	if len(field) == 0 {
		return 0, ErrMalformed
	}
	value := 0
	for _, c := range field {
		if !isDigit(c) {
			return 0, ErrMalformed
		}
		value = value*10 + int(c-'0')
		if value > math.MaxInt32 {
			return 0, ErrMalformed
		}
	}
	return value, nil
}
