// Package session holds the in-memory record of analyses performed during
// the current run of the client.
package session

import (
	"fmt"
	"strings"

	"github.com/echolens/echolens/internal/analysis"
)

// DefaultLabel is used when the user leaves the note blank.
const DefaultLabel = "Untitled"

// Entry is one completed analysis. Immutable once appended.
type Entry struct {
	Label   string
	RawText string
	Result  analysis.Result
}

// OutOfRangeError reports an entry lookup or selection with an invalid index.
// Under correct wiring this never happens.
type OutOfRangeError struct {
	Index  int
	Length int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("session index %d out of range (have %d entries)", e.Index, e.Length)
}

// Store is the append-only record of analyses, plus the single active
// selection. Entries are never reordered, mutated, or removed; an index
// stays valid for the life of the program. The store is not persisted.
//
// The store is owned by the UI event loop and is not safe for concurrent
// use.
type Store struct {
	entries []Entry
	active  int // index of the active entry, -1 before the first append
}

// NewStore creates an empty store with no active selection.
func NewStore() *Store {
	return &Store{active: -1}
}

// Append records a completed analysis and makes it the active entry.
// A blank label becomes DefaultLabel. Returns the new entry's index.
func (s *Store) Append(label, rawText string, result analysis.Result) int {
	if strings.TrimSpace(label) == "" {
		label = DefaultLabel
	}

	s.entries = append(s.entries, Entry{
		Label:   label,
		RawText: rawText,
		Result:  result,
	})
	s.active = len(s.entries) - 1
	return s.active
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the entry at index.
func (s *Store) Get(index int) (Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return Entry{}, &OutOfRangeError{Index: index, Length: len(s.entries)}
	}
	return s.entries[index], nil
}

// Select makes the entry at index the active selection.
func (s *Store) Select(index int) error {
	if index < 0 || index >= len(s.entries) {
		return &OutOfRangeError{Index: index, Length: len(s.entries)}
	}
	s.active = index
	return nil
}

// Active returns the index of the active entry, or false before the first
// append.
func (s *Store) Active() (int, bool) {
	if s.active < 0 {
		return 0, false
	}
	return s.active, true
}

// ActiveEntry returns the active entry, or false before the first append.
func (s *Store) ActiveEntry() (Entry, bool) {
	if s.active < 0 {
		return Entry{}, false
	}
	return s.entries[s.active], true
}

// Labels returns the entry labels in append order, for the tab bar.
func (s *Store) Labels() []string {
	labels := make([]string, len(s.entries))
	for i, e := range s.entries {
		labels[i] = e.Label
	}
	return labels
}
