/*
Package hintgen implements HintGenerator, the bounded-cost search that
proposes spelling corrections for a word the dictionary does not
recognize.

A HintGenerator holds an ordered list of transformation Rules and a
maximum total cost. Query walks the dictionary trie level by level,
cost 0 first, applying every rule whose pattern matches the remaining
suffix of the query word and scheduling each successor into the queue
for its own resulting cost. Two code points never cost anything to
match literally: a state is free to walk further down the trie
following the query word's own unmodified characters at any point
along the way.

Within a single query, whether a rule's left pattern matches the
suffix at trie-walk position pos depends only on pos, not on which
state reached it - State.Suffix is a pure slice of the shared query
word. Query exploits this: before searching, it groups every rule by
(rule cost, pos) into a matrix indexed directly by position - pos
ranges over [0, len(word)], a bound known up front - so a rule's
pattern is matched against the query word at most once per position
instead of once per state that reaches that position.
*/
package hintgen

import (
	"sort"
	"sync"

	"github.com/Zubayear/pisownia/ioadapt"
	"github.com/Zubayear/pisownia/locale"
	"github.com/Zubayear/pisownia/rule"
	"github.com/Zubayear/pisownia/searchstate"
	"github.com/Zubayear/pisownia/trienode"
)

// DICTIONARY_MAX_HINTS caps how many hints a single Query call ever
// returns, regardless of how many candidates the search turns up.
const DICTIONARY_MAX_HINTS = 30

// HintGenerator holds the transformation rules and cost ceiling used
// to propose hints for unrecognized words.
//
// The zero value is not usable; construct with New.
type HintGenerator struct {
	mutex   sync.RWMutex
	rules   []*rule.Rule
	maxCost int
}

// New returns a HintGenerator with no rules and a max cost of 0.
func New() *HintGenerator {
	return &HintGenerator{}
}

// MaxCost returns the current maximum hint cost.
func (g *HintGenerator) MaxCost() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.maxCost
}

// SetMaxCost installs newCost as the maximum hint cost and returns the
// previous value.
func (g *HintGenerator) SetMaxCost(newCost int) int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	old := g.maxCost
	g.maxCost = newCost
	return old
}

// ClearRules removes every rule, leaving MaxCost untouched.
func (g *HintGenerator) ClearRules() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.rules = nil
}

// AddRule appends r to the rule set if it is legal, and reports
// whether it was added.
func (g *HintGenerator) AddRule(r *rule.Rule) bool {
	if !r.IsLegal() {
		return false
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.rules = append(g.rules, r)
	return true
}

// Rules returns a snapshot of the current rule set, in the order
// rules were added.
func (g *HintGenerator) Rules() []*rule.Rule {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	out := make([]*rule.Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// wordRuleMatrix maps a rule's own cost to a slice indexed directly by
// trie-walk position, holding every rule of that cost whose left
// pattern matches the query word's suffix starting at that position.
// A query word of length n has exactly n+1 positions, a bound known
// before the first rule is matched, so each per-cost row is sized
// once and indexed in O(1) rather than looked up through a
// general-purpose associative container.
type wordRuleMatrix map[int][][]*rule.Rule

func (g *HintGenerator) prematch(word []rune) wordRuleMatrix {
	matrix := make(wordRuleMatrix)
	for _, r := range g.rules {
		for pos := 0; pos <= len(word); pos++ {
			if !r.MatchesPrefix(pos == 0, word[pos:]) {
				continue
			}
			byPos, ok := matrix[r.Cost()]
			if !ok {
				byPos = make([][]*rule.Rule, len(word)+1)
				matrix[r.Cost()] = byPos
			}
			byPos[pos] = append(byPos[pos], r)
		}
	}
	return matrix
}

func rulesFor(m wordRuleMatrix, cost, pos int) []*rule.Rule {
	byPos, ok := m[cost]
	if !ok || pos >= len(byPos) {
		return nil
	}
	return byPos[pos]
}

// frontier holds the search's pending states, bucketed by the cost at
// which each must be expanded: frontier[c] is every state scheduled
// for cost level c. schedule appends a successor to its own cost's
// bucket, including the bucket currently being drained - Query's
// index-based scan over that bucket picks up states scheduled during
// its own pass, exactly as a FIFO dequeue loop would.
type frontier [][]*searchstate.State

func newFrontier(maxCost int) frontier {
	return make(frontier, maxCost+1)
}

func (f frontier) schedule(st *searchstate.State) {
	f[st.Cost] = append(f[st.Cost], st)
}

// Query searches for hints for word, starting the trie walk at root.
// It returns at most DICTIONARY_MAX_HINTS words (or two-word phrases
// for a Split hint), ordered by ascending cost and, within a cost,
// ascending locale collation.
func (g *HintGenerator) Query(word []rune, root *trienode.Node) []string {
	g.mutex.RLock()
	matrix := g.prematch(word)
	maxCost := g.maxCost
	g.mutex.RUnlock()

	levels := newFrontier(maxCost)
	seenFull := make(map[searchstate.FullKey]int)
	seenHint := make(map[searchstate.HintKey]struct{})
	var hints []*searchstate.State

	start := searchstate.New(root, word)
	levels.schedule(start)
	seenFull[start.Full()] = start.Cost

	for cost := 0; cost <= maxCost; cost++ {
		for i := 0; i < len(levels[cost]); i++ {
			g.drainLiteralWalk(levels[cost][i], cost, maxCost, matrix, root, levels, seenFull, seenHint, &hints)
		}
	}

	return g.materialize(hints)
}

// drainLiteralWalk walks st forward through zero-cost literal matches
// of the query word's own characters, so long as the state stays
// expandable. At every node visited along this walk - including st
// itself - it checks for a completed hint and schedules every rule
// application the prematch matrix says could apply there: rule
// application is not gated on Expandable, since that flag governs only
// this free literal descent (step 2 of the search), not whether a rule
// may still fire against the state (step 4).
func (g *HintGenerator) drainLiteralWalk(
	st *searchstate.State,
	cost, maxCost int,
	matrix wordRuleMatrix,
	root *trienode.Node,
	levels frontier,
	seenFull map[searchstate.FullKey]int,
	seenHint map[searchstate.HintKey]struct{},
	hints *[]*searchstate.State,
) {
	cur := st
	for {
		if cur.IsHint() {
			hk := cur.Hint()
			if _, ok := seenHint[hk]; !ok {
				seenHint[hk] = struct{}{}
				*hints = append(*hints, cur)
			}
		}

		for ruleCost := 0; cost+ruleCost <= maxCost; ruleCost++ {
			for _, r := range rulesFor(matrix, ruleCost, cur.Pos) {
				for _, succ := range r.Apply(cur, root) {
					fk := succ.Full()
					if best, ok := seenFull[fk]; ok && best <= succ.Cost {
						continue
					}
					seenFull[fk] = succ.Cost
					levels.schedule(succ)
				}
			}
		}

		if !cur.Expandable || cur.SuffixLen() == 0 {
			return
		}
		next, ok := cur.Node.GetChild(cur.Suffix()[0])
		if !ok {
			return
		}
		cur = cur.Advance(next, 1, 0, true)
		if best, ok := seenFull[cur.Full()]; ok && best <= cur.Cost {
			return
		}
		seenFull[cur.Full()] = cur.Cost
	}
}

type scoredHint struct {
	word string
	cost int
}

// materialize renders every completed search state to its display
// string and orders them by (cost, locale collation). Every candidate
// is known up front - nothing here is extracted incrementally against
// an unbounded or growing set - so a direct sort produces the required
// order with no extraction structure needed.
func (g *HintGenerator) materialize(hints []*searchstate.State) []string {
	scored := make([]scoredHint, len(hints))
	for i, h := range hints {
		scored[i] = scoredHint{word: renderHint(h), cost: h.Cost}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].cost != scored[j].cost {
			return scored[i].cost < scored[j].cost
		}
		return locale.Default.Less(scored[i].word, scored[j].word)
	})

	limit := len(scored)
	if limit > DICTIONARY_MAX_HINTS {
		limit = DICTIONARY_MAX_HINTS
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = scored[i].word
	}
	return out
}

func renderHint(st *searchstate.State) string {
	if st.Prev != nil {
		return string(st.Prev.PathToRoot()) + " " + string(st.Node.PathToRoot())
	}
	return string(st.Node.PathToRoot())
}

// Save writes the max cost followed by every rule, in insertion
// order: "max_cost\n" then one "left*right*cost*flag\n" record per
// rule.
func (g *HintGenerator) Save(sink ioadapt.Sink) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if sink.Printf("%d\n", g.maxCost) < 0 {
		return rule.ErrWrite
	}
	for _, r := range g.rules {
		if err := r.Save(sink); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the strict inverse of Save from src: a decimal max-cost
// line, then rule records until end of input. A malformed max-cost
// line or rule record aborts the load with rule.ErrMalformed.
func Load(src ioadapt.Source) (*HintGenerator, error) {
	costField, ok := readDecimalLine(src)
	if !ok {
		return nil, rule.ErrMalformed
	}
	cost, err := parseDecimal(costField)
	if err != nil {
		return nil, err
	}

	g := New()
	g.maxCost = cost

	for {
		_, ok := src.Peek()
		if !ok {
			break
		}
		r, err := rule.Load(src)
		if err != nil {
			return nil, err
		}
		if !r.IsLegal() {
			return nil, rule.ErrMalformed
		}
		g.rules = append(g.rules, r)
	}

	return g, nil
}

func readDecimalLine(src ioadapt.Source) ([]rune, bool) {
	var buf []rune
	for {
		r, ok := src.Next()
		if !ok {
			if len(buf) == 0 {
				return nil, false
			}
			return buf, true
		}
		if r == '\n' {
			return buf, true
		}
		buf = append(buf, r)
	}
}

func parseDecimal(field []rune) (int, error) {
	if len(field) == 0 {
		return 0, rule.ErrMalformed
	}
	value := 0
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, rule.ErrMalformed
		}
		value = value*10 + int(c-'0')
	}
	return value, nil
}
