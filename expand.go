package hunaftool

import "strings"

// splitDicLine breaks a raw DIC line into stem and flag field. Morphology
// tokens after whitespace are discarded.
func splitDicLine(line string) (stem, flagField string) {
	entry := line
	if i := strings.IndexAny(entry, " \t"); i >= 0 {
		entry = entry[:i]
	}
	stem, flagField, _ = strings.Cut(entry, "/")
	return stem, flagField
}

// ExpandLine expands one raw DIC line ("stem[/flags][<ws>morphology...]").
func (a *AFF) ExpandLine(line string) ([]string, error) {
	stem, flagField := splitDicLine(line)
	return a.Expand(stem, flagField)
}

// Expand generates every surface word Hunspell would derive from a
// dictionary entry: the bare stem (unless virtual), prefixed and suffixed
// forms, prefix-after-suffix cross products, two-level suffix chains, and
// prefixed two-level chains.
//
// Words come out in a deterministic order derived from trie insertion
// order, without deduplication; callers wanting sorted or unique output
// accumulate externally.
func (a *AFF) Expand(stem, flagField string) ([]string, error) {
	flags := noFlags
	if flagField != "" {
		flags = a.flags.parseField(flagField, "dictionary entry "+stem)
	}
	enc, err := a.ab.encode(stem, true)
	if err != nil {
		return nil, err
	}
	var words []string
	a.expandEntry(enc, flags, func(w []byte) {
		words = append(words, a.ab.decode(w))
	})
	return words, nil
}

// expandEntry drives the affix application pipeline over an encoded stem.
// Hunspell applies a suffix first and then lets prefixes attempt the
// rewritten form, which is why prefix candidates are re-enumerated for
// every intermediate word.
func (a *AFF) expandEntry(stem []byte, flags flagSet, emit func([]byte)) {
	if !flags.intersects(a.needAffix) {
		emit(stem)
	}

	a.pfxBuf = a.pfxFrom.matchedRules(stem, a.pfxBuf[:0])
	for _, p := range a.pfxBuf {
		if !flags.has(p.flag) {
			continue
		}
		if w, ok := a.applyPrefix(p, stem); ok {
			emit(w)
		}
	}

	a.sfxBuf = a.sfxFrom.matchedRules(stem, a.sfxBuf[:0])
	for _, s := range a.sfxBuf {
		if !flags.has(s.flag) {
			continue
		}
		w1, ok := a.applySuffix(s, stem)
		if !ok {
			continue
		}
		if !s.flag2.intersects(a.needAffix) {
			emit(w1)
		}
		if s.cross {
			a.pfxBuf = a.pfxFrom.matchedRules(w1, a.pfxBuf[:0])
			for _, p := range a.pfxBuf {
				if !p.cross || !flags.has(p.flag) {
					continue
				}
				if w, ok := a.applyPrefix(p, w1); ok {
					emit(w)
				}
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
			emit(w2)
			if !s.cross || !s2.cross {
				continue
			}
			a.pfxBuf = a.pfxFrom.matchedRules(w2, a.pfxBuf[:0])
			for _, p := range a.pfxBuf {
				if !p.cross {
					continue
				}
				if !flags.has(p.flag) && !s.flag2.has(p.flag) {
					continue
				}
				if w, ok := a.applyPrefix(p, w2); ok {
					emit(w)
				}
			}
		}
	}
}

// applySuffix removes the rule's strip bytes from the right and appends its
// append bytes. Refused when the removal would consume the entire word and
// FULLSTRIP is not in effect.
func (a *AFF) applySuffix(m *affixMatch, word []byte) ([]byte, bool) {
	n := len(word) - len(m.removeRight)
	if n < 0 {
		return nil, false
	}
	if n == 0 && !a.fullStrip {
		return nil, false
	}
	w := make([]byte, 0, n+len(m.appendRight))
	w = append(w, word[:n]...)
	w = append(w, m.appendRight...)
	return w, true
}

// applyPrefix is the mirror image of applySuffix at the front of the word.
func (a *AFF) applyPrefix(m *affixMatch, word []byte) ([]byte, bool) {
	n := len(word) - len(m.removeLeft)
	if n < 0 {
		return nil, false
	}
	if n == 0 && !a.fullStrip {
		return nil, false
	}
	w := make([]byte, 0, n+len(m.appendLeft))
	w = append(w, m.appendLeft...)
	w = append(w, word[len(m.removeLeft):]...)
	return w, true
}
