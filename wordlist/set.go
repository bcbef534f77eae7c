package wordlist

import (
	"errors"
	"io"
	"sort"

	"github.com/derekparker/trie"
)

// Set is a deduplicating word collection. Membership is indexed by a
// prefix trie, insertion order is preserved for deterministic downstream
// processing.
type Set struct {
	index *trie.Trie
	words []string
}

func NewSet() *Set {
	return &Set{index: trie.New()}
}

// Add inserts word and reports whether it was new.
func (s *Set) Add(word string) bool {
	if _, ok := s.index.Find(word); ok {
		return false
	}
	s.index.Add(word, len(s.words))
	s.words = append(s.words, word)
	return true
}

// AddAll drains a Reader into the set.
func (s *Set) AddAll(r Reader) error {
	for {
		word, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		s.Add(word)
	}
}

// Contains reports membership.
func (s *Set) Contains(word string) bool {
	_, ok := s.index.Find(word)
	return ok
}

// HasPrefix reports whether any member starts with prefix.
func (s *Set) HasPrefix(prefix string) bool {
	return s.index.HasKeysWithPrefix(prefix)
}

// Len returns the number of distinct words.
func (s *Set) Len() int {
	return len(s.words)
}

// Words returns the members in insertion order.
func (s *Set) Words() []string {
	words := make([]string, len(s.words))
	copy(words, s.words)
	return words
}

// Sorted returns the members in lexicographic order.
func (s *Set) Sorted() []string {
	words := s.Words()
	sort.Strings(words)
	return words
}
