package hunaftool

import "fmt"

// UnknownCharacterError reports a character that is not covered by the affix
// file's alphabet. The conversion driver may recover once by reloading the
// affix file with the alphabet seeded from all input files.
type UnknownCharacterError struct {
	Char rune
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("character %q is not covered by the affix alphabet", e.Char)
}

const maxAlphabetSize = 256

// alphabet is a bijection between the characters observed in the input files
// and a dense byte index space. Encoded words are plain byte sequences, which
// keeps trie transitions array-indexed.
//
// The alphabet grows while the affix file is loaded. finalizedSize latches it;
// from then on unknown characters are reported instead of registered.
type alphabet struct {
	chars     []rune        // dense index -> character
	index     map[rune]byte // character -> dense index
	finalized bool
}

func newAlphabet() *alphabet {
	return &alphabet{
		chars: make([]rune, 0, 64),
		index: make(map[rune]byte),
	}
}

// add registers one character. Registration is idempotent.
func (ab *alphabet) add(r rune) error {
	if _, ok := ab.index[r]; ok {
		return nil
	}
	if ab.finalized {
		return &UnknownCharacterError{Char: r}
	}
	if len(ab.chars) >= maxAlphabetSize {
		return fmt.Errorf("alphabet overflow: more than %d distinct characters", maxAlphabetSize)
	}
	ab.index[r] = byte(len(ab.chars))
	ab.chars = append(ab.chars, r)
	return nil
}

// addString registers every character of s.
func (ab *alphabet) addString(s string) error {
	for _, r := range s {
		if err := ab.add(r); err != nil {
			return err
		}
	}
	return nil
}

// size returns the current cardinality without latching.
func (ab *alphabet) size() int {
	return len(ab.chars)
}

// finalizedSize latches the alphabet and returns its cardinality.
// Child arrays in the rule tries are dimensioned with this value.
func (ab *alphabet) finalizedSize() int {
	ab.finalized = true
	return len(ab.chars)
}

// code returns the dense index of r.
func (ab *alphabet) code(r rune) (byte, bool) {
	c, ok := ab.index[r]
	return c, ok
}

// encode translates word into its dense byte representation.
//
// When strict is set (or the alphabet has been finalized), an unregistered
// character yields *UnknownCharacterError and leaves the alphabet unchanged.
// Otherwise unknown characters are registered on the fly.
func (ab *alphabet) encode(word string, strict bool) ([]byte, error) {
	enc := make([]byte, 0, len(word))
	for _, r := range word {
		c, ok := ab.index[r]
		if !ok {
			if strict || ab.finalized {
				return nil, &UnknownCharacterError{Char: r}
			}
			if err := ab.add(r); err != nil {
				return nil, err
			}
			c = ab.index[r]
		}
		enc = append(enc, c)
	}
	return enc, nil
}

// decode is the inverse of encode. It is total over bytes produced by encode.
func (ab *alphabet) decode(enc []byte) string {
	runes := make([]rune, len(enc))
	for i, c := range enc {
		assert(int(c) < len(ab.chars), "encoded byte outside of alphabet")
		runes[i] = ab.chars[c]
	}
	return string(runes)
}
