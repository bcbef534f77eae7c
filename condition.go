package hunaftool

import "fmt"

// charClass lists the alphabet codes admitted at one condition position.
// Negated classes and the "." wildcard are materialized as explicit code
// lists over the finalized alphabet, so that rule insertion can fan out
// over exactly the admissible trie branches.
type charClass []byte

// condToken is one parsed condition position: a single character, a "."
// wildcard, or a (possibly negated) bracket class.
type condToken struct {
	raw     string
	members []rune // class members; nil for "."
	negated bool   // true for "[^...]" and "."
	class   charClass
}

// admits reports whether the token matches character r.
func (t condToken) admits(r rune) bool {
	for _, m := range t.members {
		if m == r {
			return !t.negated
		}
	}
	return t.negated
}

// parseCondition compiles the trailing condition field of an affix rule
// into per-position tokens. Supported syntax: ".", "[abc]", "[^abc]" and
// single characters. Unbalanced brackets are an error.
//
// The alphabet must be finalized: wildcard and negated classes enumerate
// its full code space.
func parseCondition(cond string, ab *alphabet) ([]condToken, error) {
	runes := []rune(cond)
	tokens := make([]condToken, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.':
			tokens = append(tokens, condToken{
				raw:     ".",
				negated: true,
				class:   makeClass(nil, true, ab),
			})
		case '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("unbalanced brackets in condition %q", cond)
			}
			members := runes[i+1 : end]
			negated := false
			if len(members) > 0 && members[0] == '^' {
				negated = true
				members = members[1:]
			}
			tokens = append(tokens, condToken{
				raw:     string(runes[i : end+1]),
				members: members,
				negated: negated,
				class:   makeClass(members, negated, ab),
			})
			i = end
		case ']':
			return nil, fmt.Errorf("unbalanced brackets in condition %q", cond)
		default:
			tokens = append(tokens, condToken{
				raw:     string(runes[i]),
				members: runes[i : i+1],
				class:   makeSingleton(runes[i], ab),
			})
		}
	}
	return tokens, nil
}

// classesOf strips tokens down to their compiled classes.
func classesOf(tokens []condToken) rulePath {
	path := make(rulePath, len(tokens))
	for i, t := range tokens {
		path[i] = t.class
	}
	return path
}

func makeSingleton(r rune, ab *alphabet) charClass {
	if c, ok := ab.code(r); ok {
		return charClass{c}
	}
	// A character outside the alphabet can never match.
	return charClass{}
}

func makeClass(members []rune, negated bool, ab *alphabet) charClass {
	inClass := make([]bool, ab.size())
	for _, r := range members {
		if c, ok := ab.code(r); ok {
			inClass[c] = true
		}
	}
	class := make(charClass, 0, ab.size())
	for c := 0; c < len(inClass); c++ {
		if inClass[c] != negated {
			class = append(class, byte(c))
		}
	}
	return class
}
