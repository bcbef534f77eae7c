package hunaftool

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// AFF is a loaded affix file. After loading it is read-only and safe to
// reuse across any number of Expand and Compress calls in sequence.
//
// Interior candidate buffers are reused between calls to keep the hot
// expansion loops allocation-free, so a single AFF handle must not be
// shared by concurrent goroutines.
type AFF struct {
	name      string
	ab        *alphabet
	flags     *flagTable
	fullStrip bool
	needAffix flagSet // virtual-stem marker flag(s), noFlags when absent

	pfxFrom *ruleSet // prefix rules keyed for forward application to a stem
	pfxTo   *ruleSet // prefix rules keyed for undoing from a surface word
	sfxFrom *ruleSet
	sfxTo   *ruleSet

	// per-call scratch, reused across public calls
	sfxBuf  []*affixMatch
	sfx2Buf []*affixMatch
	pfxBuf  []*affixMatch
}

// Name identifies the loaded affix file.
func (a *AFF) Name() string { return a.name }

// FullStrip reports whether the affix file permits stripping an entire stem.
func (a *AFF) FullStrip() bool { return a.fullStrip }

// Alphabet returns all characters covered by the affix file, in registration
// order.
func (a *AFF) Alphabet() string {
	return string(a.ab.chars)
}

// LoadAFF parses a Hunspell affix file.
func LoadAFF(name string, r io.Reader) (*AFF, error) {
	return LoadAFFSeeded(name, r, "")
}

// LoadAFFSeeded parses a Hunspell affix file with extra characters seeded
// into the alphabet before it is finalized. The conversion driver uses the
// seed to retry after an UnknownCharacterError, feeding it the text of all
// input files.
//
// Loading is a two-pass affair: the FLAG directive is data that determines
// how later flag fields parse, yet Hunspell tolerates it appearing after
// rule blocks. The first pass only establishes the flag mode, registers
// flags and populates the alphabet; the second pass compiles the rules into
// the four tries.
func LoadAFFSeeded(name string, r io.Reader, seed string) (*AFF, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	a := &AFF{
		name:      name,
		ab:        newAlphabet(),
		flags:     newFlagTable(),
		needAffix: noFlags,
	}
	needAffixNames, err := a.registerPass(lines)
	if err != nil {
		return nil, err
	}
	if err := a.ab.addString(seed); err != nil {
		return nil, err
	}
	alpha := a.ab.finalizedSize()
	a.pfxFrom = newRuleSet(alpha, false)
	a.pfxTo = newRuleSet(alpha, false)
	a.sfxFrom = newRuleSet(alpha, true)
	a.sfxTo = newRuleSet(alpha, true)
	if err := a.compilePass(lines); err != nil {
		return nil, err
	}
	for _, flagName := range needAffixNames {
		pos, ok := a.flags.lookup(flagName)
		assert(ok, "NEEDAFFIX flag vanished between passes")
		a.needAffix = a.needAffix.merge(a.flags.newSet().with(pos))
	}
	fromStats, toStats := a.sfxFrom.stats(), a.sfxTo.stats()
	tracer().Infof("affix file %s: alphabet=%d flags=%d suffix rules=%d (%d/%d trie nodes) prefix rules=%d",
		name, alpha, a.flags.count(), fromStats.Rules, fromStats.Nodes, toStats.Nodes, a.pfxFrom.stats().Rules)
	return a, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// splitAffLine breaks a raw AFF line into whitespace-separated fields,
// cutting at an inline comment. Reports whether the line was indented:
// Hunspell treats indented directives as inactive.
func splitAffLine(raw string) (fields []string, indented bool) {
	if raw == "" {
		return nil, false
	}
	indented = unicode.IsSpace(rune(raw[0]))
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}
	fields = strings.Fields(trimmed)
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			fields = fields[:i]
			break
		}
	}
	return fields, indented
}

// registerPass establishes the flag mode, registers every declared flag in
// order of first appearance, and feeds all observed characters into the
// alphabet. Returns the NEEDAFFIX flag names.
func (a *AFF) registerPass(lines []string) ([]string, error) {
	// The FLAG directive may appear anywhere, even after rule blocks that
	// declare flags, so the mode is resolved before any flag registers.
	for _, raw := range lines {
		fields, indented := splitAffLine(raw)
		if indented || len(fields) < 2 {
			continue
		}
		if fields[0] != "FLAG" {
			continue
		}
		switch fields[1] {
		case "UTF-8":
			a.flags.mode = flagModeUTF8
		case "long":
			a.flags.mode = flagModeLong
		case "num":
			a.flags.mode = flagModeNum
		default:
			tracer().Errorf("unsupported FLAG mode %q, assuming UTF-8", fields[1])
		}
	}

	remaining := 0 // data lines still expected for the current rule block
	var flagNames []string
	var needAffixNames []string
	for lineno, raw := range lines {
		fields, indented := splitAffLine(raw)
		if len(fields) == 0 {
			continue
		}
		if indented {
			switch fields[0] {
			case "FLAG", "FULLSTRIP", "NEEDAFFIX":
				tracer().Errorf("line %d: indented %s directive is inactive", lineno+1, fields[0])
			}
			continue
		}
		if remaining > 0 && (fields[0] == "PFX" || fields[0] == "SFX") {
			remaining--
			if len(fields) >= 4 {
				a.collectRuleChars(fields)
			}
			continue
		}
		switch fields[0] {
		case "SET":
			if len(fields) >= 2 && fields[1] != "UTF-8" {
				tracer().Errorf("line %d: unsupported SET encoding %q, proceeding as UTF-8", lineno+1, fields[1])
			}
		case "TRY", "WORDCHARS":
			if len(fields) >= 2 {
				if err := a.ab.addString(fields[1]); err != nil {
					return nil, err
				}
			}
		case "BREAK":
			// the first BREAK line carries a count, the rest carry characters
			if len(fields) >= 2 {
				if _, err := strconv.Atoi(fields[1]); err != nil {
					chars := strings.Trim(fields[1], "^$")
					if err := a.ab.addString(chars); err != nil {
						return nil, err
					}
				}
			}
		case "FULLSTRIP":
			a.fullStrip = true
		case "NEEDAFFIX":
			if len(fields) >= 2 {
				flagNames = append(flagNames, fields[1])
				needAffixNames = append(needAffixNames, fields[1])
			}
		case "PFX", "SFX":
			if len(fields) < 4 {
				tracer().Errorf("line %d: truncated %s header %q", lineno+1, fields[0], raw)
				continue
			}
			flagNames = append(flagNames, fields[1])
			count, err := strconv.Atoi(fields[3])
			if err != nil || count < 0 {
				tracer().Errorf("line %d: unreadable rule count in %s header %q", lineno+1, fields[0], raw)
				count = 0
			}
			remaining = count
		}
		// all other directives are intentionally ignored
	}
	for _, flagName := range flagNames {
		if _, err := a.flags.register(flagName); err != nil {
			return nil, err
		}
	}
	return needAffixNames, nil
}

// collectRuleChars adds the characters of a rule data line to the alphabet:
// strip, append (without its continuation flags), and the condition minus
// its class syntax.
func (a *AFF) collectRuleChars(fields []string) {
	add := func(s string) {
		if err := a.ab.addString(s); err != nil {
			tracer().Errorf("%v in rule %q", err, strings.Join(fields, " "))
		}
	}
	if fields[2] != "0" {
		add(fields[2])
	}
	appendField, _, _ := strings.Cut(fields[3], "/")
	if appendField != "0" {
		add(appendField)
	}
	if len(fields) >= 5 {
		cond := strings.NewReplacer("[", "", "]", "", "^", "", ".", "").Replace(fields[4])
		add(cond)
	}
}

// compilePass builds the four rule tries. Rule validation reproduces
// Hunspell's forgiving semantics: malformed cross-product markers default
// to N, data lines with a foreign flag warn and skip, and conditions that
// disagree with the strip field are heuristically repaired.
func (a *AFF) compilePass(lines []string) error {
	var hdrType string
	var hdrFlagName string
	var hdrFlag int
	var hdrCross bool
	remaining := 0
	for lineno, raw := range lines {
		fields, indented := splitAffLine(raw)
		if indented || len(fields) == 0 {
			continue
		}
		if fields[0] != "PFX" && fields[0] != "SFX" {
			continue
		}
		if remaining == 0 {
			// header line
			if len(fields) < 4 {
				continue // already warned in the first pass
			}
			hdrType = fields[0]
			hdrFlagName = fields[1]
			pos, ok := a.flags.lookup(hdrFlagName)
			assert(ok, "header flag vanished between passes")
			hdrFlag = pos
			switch fields[2] {
			case "Y":
				hdrCross = true
			case "N":
				hdrCross = false
			default:
				tracer().Errorf("line %d: unrecognized cross-product marker %q, assuming N", lineno+1, fields[2])
				hdrCross = false
			}
			if count, err := strconv.Atoi(fields[3]); err == nil && count > 0 {
				remaining = count
			}
			continue
		}
		remaining--
		if fields[0] != hdrType || len(fields) < 4 || fields[1] != hdrFlagName {
			tracer().Errorf("line %d: rule %q does not belong to block %s %s, skipped",
				lineno+1, raw, hdrType, hdrFlagName)
			continue
		}
		if err := a.compileRule(lineno+1, raw, fields, hdrType == "SFX", hdrFlag, hdrCross); err != nil {
			return err
		}
	}
	return nil
}

func (a *AFF) compileRule(lineno int, raw string, fields []string, suffix bool, flag int, cross bool) error {
	strip := fields[2]
	if strip == "0" {
		strip = ""
	}
	appendStr, flags2Field, hasFlags2 := strings.Cut(fields[3], "/")
	if appendStr == "0" {
		appendStr = ""
	}
	cond := "."
	if len(fields) >= 5 {
		cond = fields[4]
	}
	if cond == "." {
		cond = strip
	}

	tokens, err := parseCondition(cond, a.ab)
	if err != nil {
		return fmt.Errorf("line %d: %v", lineno, err)
	}
	tokens, ok := repairCondition(tokens, []rune(strip), suffix)
	if !ok {
		tracer().Errorf("line %d: condition %q does not cover strip %q, rule %q is inert",
			lineno, cond, strip, raw)
		return nil
	}

	flags2 := noFlags
	if hasFlags2 {
		flags2 = a.flags.parseField(flags2Field, fmt.Sprintf("line %d", lineno))
	}

	encStrip, err := a.ab.encode(strip, true)
	if err != nil {
		return fmt.Errorf("line %d: strip field: %v", lineno, err)
	}
	encAppend, err := a.ab.encode(appendStr, true)
	if err != nil {
		return fmt.Errorf("line %d: append field: %v", lineno, err)
	}

	match := &affixMatch{
		flag:  flag,
		flag2: flags2,
		cross: cross,
		raw:   raw,
	}
	stripLen := len([]rune(strip))
	if suffix {
		match.removeRight = encStrip
		match.appendRight = encAppend
		condPrefix := classesOf(tokens[:len(tokens)-stripLen]).reversed()
		a.sfxFrom.insert(append(literalPath(encStrip).reversed(), condPrefix...), match)
		a.sfxTo.insert(append(literalPath(encAppend).reversed(), condPrefix...), match)
	} else {
		match.removeLeft = encStrip
		match.appendLeft = encAppend
		condSuffix := classesOf(tokens[stripLen:])
		a.pfxFrom.insert(append(literalPath(encStrip), condSuffix...), match)
		a.pfxTo.insert(append(literalPath(encAppend), condSuffix...), match)
	}
	return nil
}

// repairCondition reconciles a condition with its strip field the way
// Hunspell does. For a suffix the condition must end in the strip (for a
// prefix: begin with it). Three recoveries are attempted in order:
//
//  1. the condition already covers the strip: accepted as-is;
//  2. the condition is a fragment of the strip itself: the strip replaces it;
//  3. the boundary positions are classes that admit the strip characters:
//     accepted, with the classes narrowed to the literal strip by the
//     literal-keyed trie paths.
//
// Anything else leaves the rule inert.
func repairCondition(tokens []condToken, strip []rune, suffix bool) ([]condToken, bool) {
	if len(strip) == 0 {
		return tokens, true
	}
	if len(tokens) >= len(strip) {
		boundary := tokens[len(tokens)-len(strip):]
		if !suffix {
			boundary = tokens[:len(strip)]
		}
		for i, t := range boundary {
			if !t.admits(strip[i]) {
				return nil, false
			}
		}
		return tokens, true
	}
	// condition shorter than strip: accept it when it is a literal fragment
	// of the strip's matching side
	frag := strip[len(strip)-len(tokens):]
	if !suffix {
		frag = strip[:len(tokens)]
	}
	for i, t := range tokens {
		if len(t.members) != 1 || t.negated || t.members[0] != frag[i] {
			return nil, false
		}
	}
	replacement := make([]condToken, len(strip))
	for i, r := range strip {
		replacement[i] = condToken{raw: string(r), members: []rune{r}}
	}
	return replacement, true
}
