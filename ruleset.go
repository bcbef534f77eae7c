package hunaftool

// affixMatch is one compiled, directional affix rule. Exactly one of the
// left/right field pairs is populated, depending on whether the rule is a
// prefix or a suffix. The same match value is shared between the from-stem
// and to-stem tries.
type affixMatch struct {
	flag  int     // bit position of the flag that gates application
	flag2 flagSet // continuation flags from the append field, noFlags if absent
	cross bool    // may participate in prefix+suffix composition

	removeLeft []byte // prefix: bytes stripped from the front of the stem
	appendLeft []byte // prefix: bytes prepended

	removeRight []byte // suffix: bytes stripped from the end of the stem
	appendRight []byte // suffix: bytes appended

	raw string // original AFF line, for diagnostics
}

func (m *affixMatch) isSuffix() bool {
	return m.removeLeft == nil && m.appendLeft == nil
}

// ruleNode is one trie state. The children vector is dimensioned by the
// finalized alphabet and allocated lazily on first insertion.
type ruleNode struct {
	matches  []*affixMatch
	children []*ruleNode
}

// ruleSet indexes affix rules by their applicability pattern. A rule whose
// condition contains character classes is inserted along every admissible
// path, so that a single descent from a word enumerates all candidates.
//
// Four instances exist per affix file: {prefix, suffix} x {from-stem,
// to-stem}. Suffix tries are keyed in reversed order and walked from the
// end of the word.
type ruleSet struct {
	root    ruleNode
	alpha   int  // children vector width
	fromEnd bool // descend from the word's end (suffix tries)

	nodeCount int
	ruleCount int
	pathCount int
}

func newRuleSet(alphaSize int, fromEnd bool) *ruleSet {
	return &ruleSet{
		alpha:     alphaSize,
		fromEnd:   fromEnd,
		nodeCount: 1,
	}
}

// rulePath is the descent-ordered key of one rule: literal affix bytes
// first, then the remaining condition classes.
type rulePath []charClass

// literalPath converts encoded bytes into singleton classes.
func literalPath(enc []byte) rulePath {
	path := make(rulePath, len(enc))
	for i, c := range enc {
		path[i] = charClass{c}
	}
	return path
}

// reversed returns path in reverse order.
func (p rulePath) reversed() rulePath {
	rev := make(rulePath, len(p))
	for i, class := range p {
		rev[len(p)-1-i] = class
	}
	return rev
}

// insert adds match along every path admitted by the per-position classes.
// An empty class on the path makes the rule unreachable; an empty path
// attaches the rule to the root, where it matches every word.
func (rs *ruleSet) insert(path rulePath, match *affixMatch) {
	rs.ruleCount++
	rs.insertAt(&rs.root, path, match)
}

func (rs *ruleSet) insertAt(node *ruleNode, path rulePath, match *affixMatch) {
	if len(path) == 0 {
		node.matches = append(node.matches, match)
		rs.pathCount++
		return
	}
	for _, c := range path[0] {
		assert(int(c) < rs.alpha, "rule byte outside of alphabet")
		if node.children == nil {
			node.children = make([]*ruleNode, rs.alpha)
		}
		child := node.children[c]
		if child == nil {
			child = &ruleNode{}
			node.children[c] = child
			rs.nodeCount++
		}
		rs.insertAt(child, path[1:], match)
	}
}

// matchedRules appends to dst every rule applicable to word and returns the
// extended slice. Rules at the root match unconditionally; descent stops at
// the first missing child or when the word is exhausted. The yield order is
// insertion order along the descent.
func (rs *ruleSet) matchedRules(word []byte, dst []*affixMatch) []*affixMatch {
	node := &rs.root
	dst = append(dst, node.matches...)
	for i := 0; i < len(word); i++ {
		c := word[i]
		if rs.fromEnd {
			c = word[len(word)-1-i]
		}
		if node.children == nil || int(c) >= rs.alpha {
			break
		}
		node = node.children[c]
		if node == nil {
			break
		}
		dst = append(dst, node.matches...)
	}
	return dst
}

type ruleSetStats struct {
	Nodes int
	Rules int
	Paths int
}

func (rs *ruleSet) stats() ruleSetStats {
	return ruleSetStats{Nodes: rs.nodeCount, Rules: rs.ruleCount, Paths: rs.pathCount}
}
