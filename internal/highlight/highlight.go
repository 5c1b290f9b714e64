// Package highlight marks keyword occurrences in feedback text.
//
// A Matcher is cheap to build and is meant to be constructed fresh from the
// stored raw text's keyword each time a panel is rendered. Marking always
// starts from the unmarked raw text, so repeated mark/unmark cycles never
// nest or accumulate markers.
package highlight

import "regexp"

// Matcher finds whole-word, case-insensitive occurrences of one keyword.
// "Whole word" means the match is not adjacent to a letter, digit, or
// underscore on either side.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles a matcher for keyword. Pattern metacharacters in the
// keyword are matched literally. An empty keyword matches nothing.
func NewMatcher(keyword string) *Matcher {
	if keyword == "" {
		return &Matcher{}
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		// QuoteMeta makes the keyword literal; compilation cannot fail for
		// any input, but a matcher that matches nothing is the safe fallback.
		return &Matcher{}
	}
	return &Matcher{re: re}
}

// Count returns the number of occurrences of the keyword in text.
func (m *Matcher) Count(text string) int {
	if m.re == nil {
		return 0
	}
	return len(m.re.FindAllStringIndex(text, -1))
}

// Mark returns text with every occurrence of the keyword replaced by
// wrap(occurrence). The original casing of each occurrence is preserved.
// With no occurrences, text is returned unchanged.
func (m *Matcher) Mark(text string, wrap func(string) string) string {
	if m.re == nil {
		return text
	}
	return m.re.ReplaceAllStringFunc(text, wrap)
}
