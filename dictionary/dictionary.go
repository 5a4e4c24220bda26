/*
Package dictionary provides Dictionary, the façade that bundles a
Trie and a HintGenerator into the one object callers construct,
persist, and query.

Dictionary owns both halves exclusively: every operation acquires the
façade's own lock before touching either half, the way this module's
other composite types (trie.Trie over its root, hintgen.HintGenerator
over its rule set) guard a single exported surface rather than
exposing their parts separately. The trie's root is never stored
inside the generator; per searchstate's split/advance design and the
design note this module inherited from its reference implementation,
the root is passed by reference into HintGenerator.Query on every call,
so Load never leaves the two halves pointing at different tries.
*/
package dictionary

import (
	"errors"
	"sync"

	"github.com/Zubayear/pisownia/hintgen"
	"github.com/Zubayear/pisownia/ioadapt"
	"github.com/Zubayear/pisownia/rule"
	"github.com/Zubayear/pisownia/trie"
	"github.com/Zubayear/pisownia/wordlist"
)

// ErrNoLegalRule is returned by AddRule when none of the requested
// rules (one, or both directions if bidirectional) is legal.
var ErrNoLegalRule = errors.New("dictionary: no legal rule to add")

// Dictionary bundles an owned Trie and an owned HintGenerator.
//
// The zero value is not usable; construct with New or Load.
type Dictionary struct {
	mutex     sync.RWMutex
	trie      *trie.Trie
	generator *hintgen.HintGenerator
}

// New returns an empty Dictionary: no words, no rules, max cost 0.
func New() *Dictionary {
	return &Dictionary{
		trie:      trie.New(),
		generator: hintgen.New(),
	}
}

// Insert adds word to the dictionary.
func (d *Dictionary) Insert(word []rune) trie.InsertResult {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.trie.Insert(word)
}

// Delete removes word from the dictionary.
func (d *Dictionary) Delete(word []rune) trie.DeleteResult {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.trie.Delete(word)
}

// Find reports whether word is a complete entry.
func (d *Dictionary) Find(word []rune) bool {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.trie.Has(word)
}

// Hints searches for plausible corrections of word and appends each,
// in order, to sink. It never returns more than
// hintgen.DICTIONARY_MAX_HINTS entries.
func (d *Dictionary) Hints(word []rune, sink wordlist.Sink) {
	d.mutex.RLock()
	hints := d.generator.Query(word, d.trie.Root())
	d.mutex.RUnlock()

	for _, h := range hints {
		sink.Add(h)
	}
}

// SetMaxCost installs newCost as the maximum hint cost and returns the
// previous value.
func (d *Dictionary) SetMaxCost(newCost int) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.generator.SetMaxCost(newCost)
}

// ClearRules removes every transformation rule, leaving MaxCost
// untouched.
func (d *Dictionary) ClearRules() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.generator.ClearRules()
}

// AddRule constructs a rule (or, if bidirectional, two: left->right
// and right->left) at the given cost and flag, and adds every legal
// one to the generator's rule set. It returns how many were added,
// and ErrNoLegalRule if none were legal.
func (d *Dictionary) AddRule(left, right []rune, bidirectional bool, cost int, flag rule.Flag) (int, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	added := 0
	if d.generator.AddRule(rule.New(left, right, cost, flag)) {
		added++
	}
	if bidirectional {
		if d.generator.AddRule(rule.New(right, left, cost, flag)) {
			added++
		}
	}
	if added == 0 {
		return 0, ErrNoLegalRule
	}
	return added, nil
}

// Save writes the trie segment followed by the generator header and
// rule list, per the dictionary file format.
func (d *Dictionary) Save(sink ioadapt.Sink) error {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if err := d.trie.Save(sink); err != nil {
		return err
	}
	return d.generator.Save(sink)
}

// Load reads the strict inverse of Save from src: a trie segment,
// then a generator header and rule list. On any format error, nothing
// is returned but a non-nil error; no partially constructed
// Dictionary escapes this call.
func Load(src ioadapt.Source) (*Dictionary, error) {
	tr, err := trie.Load(src)
	if err != nil {
		return nil, err
	}
	gen, err := hintgen.Load(src)
	if err != nil {
		return nil, err
	}
	return &Dictionary{trie: tr, generator: gen}, nil
}
