/*
Package locale wraps the locale-aware string comparison and alphabetic
classification that the spellchecker core requires but does not own.

The spec's reference target is Polish (collation pl_PL.UTF-8); this
package builds its default Comparer from golang.org/x/text/collate
seeded with golang.org/x/text/language.Polish, the direct Go-ecosystem
counterpart of the locale collation tables the reference implementation
pulled from exp/locale/collate.

Locale configuration is treated as an external precondition: callers
that need a different target locale construct their own Comparer with
New and pass it through, rather than mutating process-wide state.
*/
package locale

import (
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer performs locale-aware string comparison ("collation").
//
// A golang.org/x/text/collate.Collator keeps reusable internal buffers
// across calls, so a Comparer guards it with a mutex rather than
// assuming it is safe to share across goroutines, the same house-style
// guard this module's composite types (trie.Trie,
// hintgen.HintGenerator, dictionary.Dictionary) apply to their own
// public operations.
type Comparer struct {
	mutex sync.Mutex
	col   *collate.Collator
}

// Default is the package-level Polish collator used wherever callers do
// not supply their own Comparer.
var Default = New(language.Polish)

// New builds a Comparer for the given BCP 47 language tag.
func New(tag language.Tag) *Comparer {
	return &Comparer{col: collate.New(tag)}
}

// Compare returns a negative number if a sorts before b, zero if they
// are equivalent under this locale's collation, and a positive number
// if a sorts after b.
func (c *Comparer) Compare(a, b string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.col.CompareString(a, b)
}

// Less reports whether a sorts strictly before b under this locale.
func (c *Comparer) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}

// IsAlpha reports whether r is an alphabetic code point under Unicode's
// letter classification. No example repo in this project's corpus ships
// a dedicated locale-specific alphabetic table distinct from Unicode's
// own Letter category, so this classification is not routed through the
// collation tables above: unicode.IsLetter already matches what the
// reference implementation's iswalpha call does for Polish text.
func IsAlpha(r rune) bool {
	return unicode.IsLetter(r)
}
