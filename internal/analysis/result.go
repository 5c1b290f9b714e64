// Package analysis provides the data model and HTTP client for the remote
// text-analysis service.
package analysis

import (
	"math"
	"sort"
)

// TermScore pairs a vocabulary term with its relevance to the submitted text.
// Relevance is a similarity score in [0,1].
type TermScore struct {
	Term      string  `json:"term"`
	Relevance float64 `json:"relevance"`
}

// Result is the payload returned by the analysis service for one submission.
// Any field may be absent in the wire response; absence means empty.
type Result struct {
	Emotions      map[string]float64 `json:"emotions"`
	Keywords      []string           `json:"keywords"`
	TermRelevance []TermScore        `json:"term_relevance"`
}

// EmotionScore is one (emotion, probability) pair extracted from a Result.
type EmotionScore struct {
	Emotion string
	Score   float64
}

// TopEmotions returns the n highest-scoring emotions, score descending.
// Ties break by emotion name ascending so the ordering is deterministic
// regardless of map iteration order.
func TopEmotions(r Result, n int) []EmotionScore {
	scores := make([]EmotionScore, 0, len(r.Emotions))
	for emotion, score := range r.Emotions {
		scores = append(scores, EmotionScore{Emotion: emotion, Score: score})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Emotion < scores[j].Emotion
	})

	if n < len(scores) {
		scores = scores[:n]
	}
	return scores
}

// TopTerms returns the n most relevant vocabulary terms. The sort is stable
// on relevance descending, preserving input order among equal scores.
func TopTerms(r Result, n int) []TermScore {
	terms := make([]TermScore, len(r.TermRelevance))
	copy(terms, r.TermRelevance)

	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Relevance > terms[j].Relevance
	})

	if n < len(terms) {
		terms = terms[:n]
	}
	return terms
}

// Percent converts a [0,1] score to a whole percentage.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}
