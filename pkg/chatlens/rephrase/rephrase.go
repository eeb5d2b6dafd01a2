// Package rephrase finds pairs of questions that are likely
// rewordings of each other.
package rephrase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/chatlens/pkg/chatlens/ingest"
	"github.com/cognicore/chatlens/pkg/chatlens/internalerr"
	"github.com/cognicore/chatlens/pkg/chatlens/vectorize"
)

// Pair holds two questions whose similarity exceeded the threshold.
type Pair struct {
	QuestionA string
	QuestionB string
	IndexA    int // position in the extracted question list
	IndexB    int
	Score     float64
}

// Scanner vectorizes questions over a shared vocabulary and scores
// every unordered pair by cosine similarity.
type Scanner struct {
	tokenizer *ingest.Tokenizer
}

// NewScanner creates a scanner. The tokenizer is shared across all
// questions so pair scores are computed over the same vocabulary.
func NewScanner(tokenizer *ingest.Tokenizer) *Scanner {
	return &Scanner{tokenizer: tokenizer}
}

// ExtractQuestions returns the messages classified as questions, in
// original order with duplicates retained. A message is a question
// when its trimmed text ends with '?'.
func ExtractQuestions(messages []string) []string {
	var questions []string
	for _, msg := range messages {
		if strings.HasSuffix(strings.TrimSpace(msg), "?") {
			questions = append(questions, msg)
		}
	}
	return questions
}

// Scan extracts questions from the messages and returns every pair
// scoring strictly above the threshold, sorted by descending score
// with ties broken by original index order. Fewer than two questions
// yields an empty result.
func (s *Scanner) Scan(messages []string, threshold float64) ([]Pair, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("similarity threshold %v outside [0,1]: %w",
			threshold, internalerr.ErrInvalidInput)
	}

	questions := ExtractQuestions(messages)
	if len(questions) < 2 {
		return nil, nil
	}

	docs := make([][]string, len(questions))
	for i, q := range questions {
		docs[i] = s.tokenizer.Tokenize(q)
	}

	vocab := vectorize.Build(docs, 0)
	if vocab.Size() == 0 {
		return nil, nil
	}
	counts := vectorize.CountMatrix(docs, vocab)

	var pairs []Pair
	for i := 0; i < len(questions); i++ {
		for j := i + 1; j < len(questions); j++ {
			score := vectorize.Cosine(counts.RowView(i), counts.RowView(j))
			if score > threshold {
				pairs = append(pairs, Pair{
					QuestionA: questions[i],
					QuestionB: questions[j],
					IndexA:    i,
					IndexB:    j,
					Score:     score,
				})
			}
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].Score == pairs[b].Score {
			if pairs[a].IndexA == pairs[b].IndexA {
				return pairs[a].IndexB < pairs[b].IndexB
			}
			return pairs[a].IndexA < pairs[b].IndexA
		}
		return pairs[a].Score > pairs[b].Score
	})

	return pairs, nil
}
