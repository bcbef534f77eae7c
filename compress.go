package hunaftool

import (
	"bytes"
	"sort"
)

// Entry is one dictionary line: a stem and its (possibly empty) flag field.
type Entry struct {
	Stem  string
	Flags string
}

// Line renders the entry in DIC syntax.
func (e Entry) Line() string {
	if e.Flags == "" {
		return e.Stem
	}
	return e.Stem + "/" + e.Flags
}

// stemData tracks one candidate stem during compression. A virtual stem is
// not itself a member of the word list and may only be emitted under the
// NEEDAFFIX flag.
type stemData struct {
	enc     []byte
	realIdx int // index into the word list, -1 for virtual stems
	flags   map[int]bool
	covers  []int // word indices generated by this stem
}

// Compress chooses a minimal set of stem+flag entries whose expansion under
// this affix file reproduces words exactly, as a set.
//
// The algorithm is a greedy set cover: reverse suffix rules attribute each
// word to candidate stems, flags that would generate words outside the list
// are pruned, and stems are considered in order of decreasing coverage,
// each emitted when it still covers a word not covered before. Words no
// stem covers fall through as flag-less entries.
func (a *AFF) Compress(words []string) ([]Entry, error) {
	encs := make([][]byte, 0, len(words))
	index := make(map[string]int, len(words))
	for _, w := range words {
		enc, err := a.ab.encode(w, true)
		if err != nil {
			return nil, err
		}
		if _, dup := index[string(enc)]; dup {
			continue
		}
		index[string(enc)] = len(encs)
		encs = append(encs, enc)
	}
	total := len(encs)

	// Step 1: derive candidate stems by undoing every suffix rule whose
	// append is a suffix of the word.
	stems := make(map[string]*stemData)
	var order []*stemData
	recordFlag := func(stemEnc []byte, realIdx int, flag int) {
		key := string(stemEnc)
		sd := stems[key]
		if sd == nil {
			sd = &stemData{enc: stemEnc, realIdx: realIdx, flags: make(map[int]bool)}
			stems[key] = sd
			order = append(order, sd)
		}
		sd.flags[flag] = true
	}
	var matchBuf []*affixMatch
	for _, enc := range encs {
		matchBuf = a.sfxTo.matchedRules(enc, matchBuf[:0])
		for _, m := range matchBuf {
			cut := len(enc) - len(m.appendRight)
			if cut < 0 || (cut == 0 && !a.fullStrip) {
				continue
			}
			stemEnc := make([]byte, 0, cut+len(m.removeRight))
			stemEnc = append(stemEnc, enc[:cut]...)
			stemEnc = append(stemEnc, m.removeRight...)
			if len(stemEnc) == 0 {
				continue
			}
			if j, real := index[string(stemEnc)]; real {
				recordFlag(stemEnc, j, m.flag)
			} else if !a.needAffix.empty() {
				recordFlag(stemEnc, -1, m.flag)
			}
		}
	}

	// Steps 2 and 3: drop flags whose expansion escapes the word list, then
	// measure what remains. Coverage mirrors the expansion engine exactly,
	// continuation suffixes included, so the emitted dictionary can produce
	// no surplus words.
	for _, sd := range order {
		for _, flag := range sortedFlags(sd.flags) {
			valid := true
			a.expandSuffixFlag(sd.enc, flag, func(w []byte) bool {
				if _, ok := index[string(w)]; !ok {
					valid = false
					return false
				}
				return true
			})
			if !valid {
				delete(sd.flags, flag)
			}
		}
		coverSet := make(map[int]struct{})
		if sd.realIdx >= 0 {
			coverSet[sd.realIdx] = struct{}{}
		}
		for _, flag := range sortedFlags(sd.flags) {
			a.expandSuffixFlag(sd.enc, flag, func(w []byte) bool {
				if i, ok := index[string(w)]; ok {
					coverSet[i] = struct{}{}
				}
				return true
			})
		}
		sd.covers = make([]int, 0, len(coverSet))
		for i := range coverSet {
			sd.covers = append(sd.covers, i)
		}
		sort.Ints(sd.covers)
	}

	// Step 4: greedy selection. The tie-breaking chain is total, so the
	// outcome is deterministic for a given word list and affix file.
	sort.Slice(order, func(i, j int) bool {
		x, y := order[i], order[j]
		if len(x.covers) != len(y.covers) {
			return len(x.covers) > len(y.covers)
		}
		if len(x.enc) != len(y.enc) {
			return len(x.enc) < len(y.enc)
		}
		return bytes.Compare(x.enc, y.enc) < 0
	})
	todo := make([]bool, total)
	for i := range todo {
		todo[i] = true
	}
	var entries []Entry
	for _, sd := range order {
		effective := 0
		for _, i := range sd.covers {
			if todo[i] {
				effective++
			}
		}
		// a virtual stem covering a single word is strictly worse than
		// emitting that word directly
		if effective == 0 || (sd.realIdx < 0 && effective < 2) {
			continue
		}
		flags := a.flags.newSet()
		for _, flag := range sortedFlags(sd.flags) {
			flags = flags.with(flag)
		}
		if sd.realIdx < 0 {
			flags = flags.merge(a.needAffix)
		}
		entries = append(entries, Entry{
			Stem:  a.ab.decode(sd.enc),
			Flags: a.flags.format(flags),
		})
		for _, i := range sd.covers {
			todo[i] = false
		}
	}

	// Step 5: whatever remains uncovered becomes a flag-less entry.
	for i, enc := range encs {
		if todo[i] {
			entries = append(entries, Entry{Stem: a.ab.decode(enc)})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Stem < entries[j].Stem
	})
	return entries, nil
}

func sortedFlags(flags map[int]bool) []int {
	positions := make([]int, 0, len(flags))
	for pos := range flags {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// expandSuffixFlag visits every surface word that one flag contributes to a
// stem's expansion through the suffix pipeline: first-level results (unless
// the rule's continuation flags mark them virtual) and all second-level
// continuations. visit returning false stops the walk.
func (a *AFF) expandSuffixFlag(stem []byte, flag int, visit func([]byte) bool) {
	a.sfxBuf = a.sfxFrom.matchedRules(stem, a.sfxBuf[:0])
	for _, s := range a.sfxBuf {
		if s.flag != flag {
			continue
		}
		w1, ok := a.applySuffix(s, stem)
		if !ok {
			continue
		}
		if !s.flag2.intersects(a.needAffix) {
			if !visit(w1) {
				return
			}
		}
		if s.flag2.empty() {
			continue
		}
		a.sfx2Buf = a.sfxFrom.matchedRules(w1, a.sfx2Buf[:0])
		for _, s2 := range a.sfx2Buf {
			if !s.flag2.has(s2.flag) {
				continue
			}
			w2, ok := a.applySuffix(s2, w1)
			if !ok {
				continue
			}
			if !visit(w2) {
				return
			}
		}
	}
}
