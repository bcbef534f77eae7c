package hunaftool

import "testing"

func newTestMatch(flag int) *affixMatch {
	return &affixMatch{flag: flag, flag2: noFlags, removeRight: []byte{}, appendRight: []byte{}}
}

func matchFlags(matches []*affixMatch) []int {
	flags := make([]int, len(matches))
	for i, m := range matches {
		flags[i] = m.flag
	}
	return flags
}

func TestRuleSetRootRulesMatchEveryWord(t *testing.T) {
	rs := newRuleSet(4, false)
	rs.insert(nil, newTestMatch(7))
	got := rs.matchedRules([]byte{0, 1, 2}, nil)
	if len(got) != 1 || got[0].flag != 7 {
		t.Fatalf("root rule should match any word, got %v", matchFlags(got))
	}
	got = rs.matchedRules(nil, nil)
	if len(got) != 1 {
		t.Fatalf("root rule should match the empty word, got %v", matchFlags(got))
	}
}

func TestRuleSetForwardDescent(t *testing.T) {
	rs := newRuleSet(4, false)
	rs.insert(rulePath{charClass{1}, charClass{2}}, newTestMatch(1))
	if got := rs.matchedRules([]byte{1, 2, 3}, nil); len(got) != 1 {
		t.Fatalf("prefix path should match, got %v", matchFlags(got))
	}
	if got := rs.matchedRules([]byte{1, 3}, nil); len(got) != 0 {
		t.Fatalf("diverging word should not match, got %v", matchFlags(got))
	}
	// descent stops when the word is exhausted
	if got := rs.matchedRules([]byte{1}, nil); len(got) != 0 {
		t.Fatalf("short word should not reach the rule, got %v", matchFlags(got))
	}
}

func TestRuleSetReverseDescent(t *testing.T) {
	rs := newRuleSet(4, true)
	// keyed in reversed order: word must end with [2 1]
	rs.insert(rulePath{charClass{1}, charClass{2}}, newTestMatch(1))
	if got := rs.matchedRules([]byte{0, 2, 1}, nil); len(got) != 1 {
		t.Fatalf("suffix path should match from the end, got %v", matchFlags(got))
	}
	if got := rs.matchedRules([]byte{1, 2, 0}, nil); len(got) != 0 {
		t.Fatalf("suffix should not match forward, got %v", matchFlags(got))
	}
}

func TestRuleSetClassFanOut(t *testing.T) {
	rs := newRuleSet(4, false)
	rs.insert(rulePath{charClass{0, 2}, charClass{1}}, newTestMatch(5))
	if got := rs.matchedRules([]byte{0, 1}, nil); len(got) != 1 {
		t.Fatalf("class member 0 should match, got %v", matchFlags(got))
	}
	if got := rs.matchedRules([]byte{2, 1}, nil); len(got) != 1 {
		t.Fatalf("class member 2 should match, got %v", matchFlags(got))
	}
	if got := rs.matchedRules([]byte{1, 1}, nil); len(got) != 0 {
		t.Fatalf("non-member should not match, got %v", matchFlags(got))
	}
	stats := rs.stats()
	if stats.Rules != 1 {
		t.Fatalf("rule count is %d, should be 1", stats.Rules)
	}
	if stats.Paths != 2 {
		t.Fatalf("path count is %d, should be 2 after fan-out", stats.Paths)
	}
}

func TestRuleSetYieldsRulesAlongDescent(t *testing.T) {
	rs := newRuleSet(4, false)
	rs.insert(rulePath{charClass{1}}, newTestMatch(1))
	rs.insert(rulePath{charClass{1}, charClass{2}}, newTestMatch(2))
	got := rs.matchedRules([]byte{1, 2}, nil)
	if len(got) != 2 || got[0].flag != 1 || got[1].flag != 2 {
		t.Fatalf("descent should yield shallow rules first, got %v", matchFlags(got))
	}
}

func TestRuleSetEmptyClassMakesRuleUnreachable(t *testing.T) {
	rs := newRuleSet(4, false)
	rs.insert(rulePath{charClass{}}, newTestMatch(1))
	for c := byte(0); c < 4; c++ {
		if got := rs.matchedRules([]byte{c}, nil); len(got) != 0 {
			t.Fatalf("rule behind an empty class matched %d", c)
		}
	}
}
