package dictionary

import (
	"strings"
	"testing"

	"github.com/Zubayear/pisownia/ioadapt"
	"github.com/Zubayear/pisownia/rule"
	"github.com/Zubayear/pisownia/trie"
	"github.com/Zubayear/pisownia/wordlist"
)

func TestInsertFindDelete(t *testing.T) {
	d := New()

	if res := d.Insert([]rune("wątły")); res != trie.Inserted {
		t.Fatalf("expected Inserted, got %v", res)
	}
	if res := d.Insert([]rune("wątły")); res != trie.AlreadyPresent {
		t.Fatalf("expected AlreadyPresent, got %v", res)
	}
	d.Insert([]rune("wątlejszy"))
	d.Insert([]rune("łódka"))

	for _, w := range []string{"wątły", "wątlejszy", "łódka"} {
		if !d.Find([]rune(w)) {
			t.Errorf("expected %q to be found", w)
		}
	}
	if d.Find([]rune("wątl")) {
		t.Errorf("wątl is only a prefix, should not be found")
	}

	if res := d.Delete([]rune("łódka")); res != trie.Deleted {
		t.Fatalf("expected Deleted, got %v", res)
	}
	if d.Find([]rune("łódka")) {
		t.Errorf("łódka should be gone after delete")
	}
	if res := d.Delete([]rune("łódka")); res != trie.NotPresent {
		t.Fatalf("expected NotPresent, got %v", res)
	}
}

func TestAddRuleBidirectional(t *testing.T) {
	d := New()
	d.SetMaxCost(1)

	n, err := d.AddRule([]rune("1"), []rune("2"), true, 1, rule.Normal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected both directions legal, got %d added", n)
	}
}

func TestAddRuleRejectsWhenNeitherDirectionLegal(t *testing.T) {
	d := New()
	// Both sides empty with a non-Split flag is illegal in either
	// direction: swapping empty sides is still empty sides.
	_, err := d.AddRule(nil, nil, true, 1, rule.Normal)
	if err != ErrNoLegalRule {
		t.Fatalf("expected ErrNoLegalRule, got %v", err)
	}
}

func TestHintsOrderedByCostThenCollation(t *testing.T) {
	d := New()
	for _, w := range []string{"felin", "fen", "fin", "féin", "mein", "tein"} {
		d.Insert([]rune(w))
	}
	d.SetMaxCost(1)
	// One single-code-point edit: substitution, deletion, or
	// insertion, at cost 1.
	d.AddRule([]rune("1"), []rune("2"), false, 1, rule.Normal)
	d.AddRule([]rune("1"), nil, false, 1, rule.Normal)
	d.AddRule(nil, []rune("1"), false, 1, rule.Normal)

	sink := wordlist.NewSliceSink(nil)
	d.Hints([]rune("fein"), sink)

	want := []string{"féin", "felin", "fen", "fin", "mein", "tein"}
	if sink.Size() != len(want) {
		t.Fatalf("expected %d hints, got %d: %v", len(want), sink.Size(), sink.Words())
	}
	for i, w := range want {
		got, ok := sink.Get(i)
		if !ok || got != w {
			t.Errorf("position %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestHintsSplit(t *testing.T) {
	d := New()
	d.Insert([]rune("jak"))
	d.Insert([]rune("oś"))
	d.SetMaxCost(1)
	// A literal match of the whole first word, walked in the trie to
	// its own terminal node: the Split flag anchors it as the first
	// half of a two-word hint and resumes the search at root for the
	// second half.
	d.AddRule([]rune("jak"), []rune("jak"), false, 1, rule.Split)

	sink := wordlist.NewSliceSink(nil)
	d.Hints([]rune("jakoś"), sink)

	found := false
	for i := 0; i < sink.Size(); i++ {
		w, _ := sink.Get(i)
		if w == "jak oś" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'jak oś' among hints, got %v", sink.Words())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d := New()
	d.Insert([]rune("ciupaga"))
	d.Insert([]rune("gazda"))
	d.SetMaxCost(1)
	d.AddRule([]rune("1"), []rune("2"), false, 1, rule.Normal)

	var sb strings.Builder
	sink := ioadapt.NewStreamSink(&sb, &sb)
	if err := d.Save(sink); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := Load(ioadapt.NewRuneSource(strings.NewReader(sb.String())))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	for _, w := range []string{"ciupaga", "gazda"} {
		if !loaded.Find([]rune(w)) {
			t.Errorf("expected %q to survive round trip", w)
		}
	}

	var sb2 strings.Builder
	sink2 := ioadapt.NewStreamSink(&sb2, &sb2)
	if err := loaded.Save(sink2); err != nil {
		t.Fatalf("unexpected re-save error: %v", err)
	}
	if sb.String() != sb2.String() {
		t.Errorf("round trip not byte-identical:\n%q\n%q", sb.String(), sb2.String())
	}
}

func TestSaveOneWordNoRules(t *testing.T) {
	d := New()
	d.Insert([]rune("ciupaga"))

	var sb strings.Builder
	sink := ioadapt.NewStreamSink(&sb, &sb)
	if err := d.Save(sink); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	want := "ciupaga*^^^^^^^\n0\n"
	if sb.String() != want {
		t.Errorf("expected %q, got %q", want, sb.String())
	}
}

func TestLoadRejectsMalformedTrie(t *testing.T) {
	src := ioadapt.NewRuneSource(strings.NewReader("a*^^\n0\n"))
	if _, err := Load(src); err == nil {
		t.Fatalf("expected an error for a pop above root")
	}
}
