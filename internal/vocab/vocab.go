// Package vocab manages the vocabulary of terms scored against each
// feedback submission.
package vocab

import "strings"

// Set is an ordered list of terms. No two terms may be equal under
// case-insensitive comparison.
type Set struct {
	terms []string
}

// NewSet creates a set from terms, dropping blanks and case-insensitive
// duplicates while preserving first-seen order.
func NewSet(terms ...string) *Set {
	s := &Set{}
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

// Add appends a term after trimming whitespace. It reports false for an
// empty term or a case-insensitive duplicate, leaving the set unchanged.
func (s *Set) Add(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}
	if s.Contains(term) {
		return false
	}
	s.terms = append(s.terms, term)
	return true
}

// Remove deletes the exact-match term if present. Removing an absent term is
// a no-op, not an error; the return value only reports whether the term was
// there.
func (s *Set) Remove(term string) bool {
	for i, t := range s.terms {
		if t == term {
			s.terms = append(s.terms[:i], s.terms[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the set holds term, compared case-insensitively.
func (s *Set) Contains(term string) bool {
	lower := strings.ToLower(term)
	for _, t := range s.terms {
		if strings.ToLower(t) == lower {
			return true
		}
	}
	return false
}

// Replace swaps the whole term list, applying the same blank/duplicate
// filtering as Add.
func (s *Set) Replace(terms []string) {
	s.terms = nil
	for _, t := range terms {
		s.Add(t)
	}
}

// LoadPreset replaces the set's terms with the named preset from p.
// An unknown name leaves the set unchanged and reports false.
func (s *Set) LoadPreset(p Presets, name string) bool {
	terms, ok := p[name]
	if !ok {
		return false
	}
	s.Replace(terms)
	return true
}

// Terms returns a copy of the term list in order.
func (s *Set) Terms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// Len returns the number of terms.
func (s *Set) Len() int {
	return len(s.terms)
}
