package rule

import (
	"strings"
	"testing"

	"github.com/Zubayear/pisownia/ioadapt"
	"github.com/Zubayear/pisownia/searchstate"
	"github.com/Zubayear/pisownia/trienode"
)

func TestIsLegalAtMostOneFreeVariable(t *testing.T) {
	legal := New([]rune("a"), []rune("1"), 1, Normal)
	if !legal.IsLegal() {
		t.Errorf("a single free variable should be legal")
	}

	illegal := New([]rune("a"), []rune("12"), 1, Normal)
	if illegal.IsLegal() {
		t.Errorf("two free variables should be illegal")
	}

	boundVar := New([]rune("1a"), []rune("1b"), 1, Normal)
	if !boundVar.IsLegal() {
		t.Errorf("a variable bound on the left is not free, should be legal")
	}
}

func TestIsLegalEmptyBothSidesRequiresSplit(t *testing.T) {
	noSplit := New(nil, nil, 1, Normal)
	if noSplit.IsLegal() {
		t.Errorf("empty/empty without Split should be illegal")
	}

	withSplit := New(nil, nil, 1, Split)
	if !withSplit.IsLegal() {
		t.Errorf("empty/empty with Split should be legal")
	}
}

func TestMatchesPrefixLiteral(t *testing.T) {
	r := New([]rune("ab"), []rune("x"), 1, Normal)
	if !r.MatchesPrefix(false, []rune("abc")) {
		t.Errorf("expected 'ab' to match prefix of 'abc'")
	}
	if r.MatchesPrefix(false, []rune("ac")) {
		t.Errorf("did not expect 'ab' to match 'ac'")
	}
	if r.MatchesPrefix(false, []rune("a")) {
		t.Errorf("text shorter than the pattern cannot match")
	}
}

func TestMatchesPrefixVariableConsistency(t *testing.T) {
	r := New([]rune("11"), nil, 0, Normal)
	if !r.MatchesPrefix(false, []rune("aa")) {
		t.Errorf("expected repeated variable to match a doubled letter")
	}
	if r.MatchesPrefix(false, []rune("ab")) {
		t.Errorf("expected repeated variable to reject mismatched letters")
	}
}

func buildTrie(words ...string) *trienode.Node {
	root := trienode.New(trienode.RootKey)
	for _, w := range words {
		cur := root
		for _, r := range w {
			cur = cur.AddChild(r)
		}
		cur.SetIsWord(true)
	}
	return root
}

func TestApplyNormalDeletion(t *testing.T) {
	root := buildTrie("kot")
	// Rule: delete the variable entirely (left "1", right "").
	r := New([]rune("1"), nil, 1, Normal)

	s := searchstate.New(root, []rune("xkot"))
	results := r.Apply(s, root)
	if len(results) != 1 {
		t.Fatalf("expected exactly one successor, got %d", len(results))
	}
	succ := results[0]
	if succ.Pos != 1 || succ.Cost != 1 {
		t.Fatalf("expected pos=1 cost=1, got pos=%d cost=%d", succ.Pos, succ.Cost)
	}
	if succ.Node != root {
		t.Errorf("expected deletion to leave the node unchanged")
	}
}

func TestApplyFreeVariableFansOutOverChildren(t *testing.T) {
	root := buildTrie("kot", "pies")
	// Rule: insert any single letter before the rest of the word (left "", right "1").
	r := New(nil, []rune("1"), 1, Normal)

	s := searchstate.New(root, []rune("ot"))
	results := r.Apply(s, root)

	found := make(map[rune]bool)
	for _, succ := range results {
		if succ.Pos != 0 {
			t.Errorf("expected unconsumed suffix position to stay 0, got %d", succ.Pos)
		}
		found[succ.Node.Key()] = true
	}
	if !found['k'] || !found['p'] {
		t.Errorf("expected fan-out over both root children, got %v", found)
	}
}

func TestApplyBeginRejectsNonInitialState(t *testing.T) {
	root := buildTrie("kot")
	k, _ := root.GetChild('k')
	r := New([]rune("o"), []rune("o"), 1, Begin)

	s := searchstate.New(root, []rune("ot")).Advance(k, 1, 0, true)
	if results := r.Apply(s, root); results != nil {
		t.Errorf("expected Begin rule to reject a non-initial state, got %v", results)
	}
}

func TestApplySplitRequiresTerminalNode(t *testing.T) {
	root := buildTrie("ko", "kotek")
	r := New([]rune("ko"), []rune("ko"), 1, Split)

	s := searchstate.New(root, []rune("kotek"))
	results := r.Apply(s, root)
	if len(results) != 1 {
		t.Fatalf("expected one split successor, got %d", len(results))
	}
	if results[0].Node != root {
		t.Errorf("expected split successor to resume at root")
	}
	if results[0].Prev == nil {
		t.Errorf("expected split successor to carry an anchor")
	}
	if results[0].Pos != 2 {
		t.Errorf("expected split successor to have consumed 'ko', got pos=%d", results[0].Pos)
	}
}

func TestApplySplitSkipsNonTerminalReach(t *testing.T) {
	root := buildTrie("kotek")
	r := New([]rune("ko"), []rune("ko"), 1, Split)

	s := searchstate.New(root, []rune("kotek"))
	if results := r.Apply(s, root); results != nil {
		t.Errorf("expected no split successor when the reached node is not a word, got %v", results)
	}
}

func TestApplyEndFlagProducesNonExpandable(t *testing.T) {
	root := buildTrie("kot")
	k, _ := root.GetChild('k')
	o, _ := k.GetChild('o')
	r := New([]rune("t"), []rune("t"), 1, End)

	s := searchstate.New(root, []rune("kot")).Advance(o, 2, 0, true)
	results := r.Apply(s, root)
	if len(results) != 1 {
		t.Fatalf("expected one successor, got %d", len(results))
	}
	if results[0].Expandable {
		t.Errorf("expected End rule's successor to be non-expandable")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := New([]rune("ab"), []rune("1c"), 3, End)

	var sb strings.Builder
	sink := ioadapt.NewStreamSink(&sb, &sb)
	if err := original.Save(sink); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	src := ioadapt.NewRuneSource(strings.NewReader(sb.String()))
	loaded, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if string(loaded.Left()) != "ab" || string(loaded.Right()) != "1c" {
		t.Errorf("expected left/right to round-trip, got %q/%q", string(loaded.Left()), string(loaded.Right()))
	}
	if loaded.Cost() != 3 || loaded.FlagValue() != End {
		t.Errorf("expected cost=3 flag=End, got cost=%d flag=%v", loaded.Cost(), loaded.FlagValue())
	}
}

func TestLoadRejectsMalformedCost(t *testing.T) {
	src := ioadapt.NewRuneSource(strings.NewReader("a*b**0\n"))
	if _, err := Load(src); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed for empty cost field, got %v", err)
	}
}

func TestLoadRejectsNegativeCost(t *testing.T) {
	src := ioadapt.NewRuneSource(strings.NewReader("a*b*-1*0\n"))
	if _, err := Load(src); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed for negative cost field, got %v", err)
	}
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	src := ioadapt.NewRuneSource(strings.NewReader("a*b*1*9\n"))
	if _, err := Load(src); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed for out-of-range flag, got %v", err)
	}
}

func TestLoadRejectsTruncatedRecord(t *testing.T) {
	src := ioadapt.NewRuneSource(strings.NewReader("a*b*1"))
	if _, err := Load(src); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed for truncated record, got %v", err)
	}
}
