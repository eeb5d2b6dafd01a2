// Package report renders analysis results as text, markdown, or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/chatlens/pkg/chatlens/config"
	"github.com/cognicore/chatlens/pkg/chatlens/freq"
	"github.com/cognicore/chatlens/pkg/chatlens/rephrase"
	"github.com/cognicore/chatlens/pkg/chatlens/topics"
)

// Report collects the results of every requested analysis. Nil
// sections were not requested; a section with a non-nil Err failed
// while its siblings may still have succeeded.
type Report struct {
	CommonWords  *CommonWordsSection
	Topics       *TopicsSection
	Rephrasings  *RephrasingSection
	EnglishWords *EnglishWordsSection
}

// CommonWordsSection holds the top-N word counts.
type CommonWordsSection struct {
	Filtered bool
	Entries  []freq.Entry
	Err      error
}

// TopicsSection holds the decomposed topics.
type TopicsSection struct {
	Topics []topics.Topic
	Err    error
}

// RephrasingSection holds the similar-question pairs.
type RephrasingSection struct {
	Threshold float64
	Pairs     []rephrase.Pair
	Err       error
}

// EnglishWordsSection holds the built-in common-English word list.
type EnglishWordsSection struct {
	Words []string
}

// Errs returns the errors of every failed section.
func (r Report) Errs() []error {
	var errs []error
	if r.CommonWords != nil && r.CommonWords.Err != nil {
		errs = append(errs, fmt.Errorf("common words: %w", r.CommonWords.Err))
	}
	if r.Topics != nil && r.Topics.Err != nil {
		errs = append(errs, fmt.Errorf("topic modeling: %w", r.Topics.Err))
	}
	if r.Rephrasings != nil && r.Rephrasings.Err != nil {
		errs = append(errs, fmt.Errorf("rephrasing: %w", r.Rephrasings.Err))
	}
	return errs
}

// Failed reports whether every requested analysis failed. A report
// with at least one successful section is a partial success.
func (r Report) Failed() bool {
	requested := 0
	failed := 0
	if r.CommonWords != nil {
		requested++
		if r.CommonWords.Err != nil {
			failed++
		}
	}
	if r.Topics != nil {
		requested++
		if r.Topics.Err != nil {
			failed++
		}
	}
	if r.Rephrasings != nil {
		requested++
		if r.Rephrasings.Err != nil {
			failed++
		}
	}
	if r.EnglishWords != nil {
		requested++
	}
	return requested > 0 && failed == requested
}

// Render writes the report to w in the given output format. Sections
// appear in the order: common words, topics, rephrasing, English words.
func Render(w io.Writer, r Report, format string) error {
	switch format {
	case config.OutputMarkdown:
		return renderMarkdown(w, r)
	case config.OutputJSON:
		return renderJSON(w, r)
	default:
		return renderText(w, r)
	}
}

func renderText(w io.Writer, r Report) error {
	if s := r.CommonWords; s != nil {
		if _, err := fmt.Fprintf(w, "Top %d Common Words (filtered=%v):\n", len(s.Entries), s.Filtered); err != nil {
			return err
		}
		if s.Err != nil {
			if _, err := fmt.Fprintf(w, "  error: %v\n", s.Err); err != nil {
				return err
			}
		}
		for _, e := range s.Entries {
			if _, err := fmt.Fprintf(w, "  %-20s %d\n", e.Token, e.Count); err != nil {
				return err
			}
		}
	}

	if s := r.Topics; s != nil {
		if _, err := fmt.Fprintln(w, "\nTopics:"); err != nil {
			return err
		}
		if s.Err != nil {
			if _, err := fmt.Fprintf(w, "  error: %v\n", s.Err); err != nil {
				return err
			}
		}
		for k, topic := range s.Topics {
			if _, err := fmt.Fprintf(w, "  Topic %d: %s\n", k, formatTerms(topic.Terms)); err != nil {
				return err
			}
		}
	}

	if s := r.Rephrasings; s != nil {
		if _, err := fmt.Fprintf(w, "\nSimilar Question Pairs (threshold=%.2f):\n", s.Threshold); err != nil {
			return err
		}
		if s.Err != nil {
			if _, err := fmt.Fprintf(w, "  error: %v\n", s.Err); err != nil {
				return err
			}
		}
		if len(s.Pairs) == 0 && s.Err == nil {
			if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
				return err
			}
		}
		for _, p := range s.Pairs {
			if _, err := fmt.Fprintf(w, "  %.2f  %q <-> %q\n", p.Score, p.QuestionA, p.QuestionB); err != nil {
				return err
			}
		}
	}

	if s := r.EnglishWords; s != nil {
		if _, err := fmt.Fprintf(w, "\nTop %d Most Common English Words:\n  %s\n",
			len(s.Words), strings.Join(s.Words, ", ")); err != nil {
			return err
		}
	}

	return nil
}

func renderMarkdown(w io.Writer, r Report) error {
	if s := r.CommonWords; s != nil {
		if _, err := fmt.Fprintf(w, "## Common Words (filtered=%v)\n\n", s.Filtered); err != nil {
			return err
		}
		if s.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n\n", s.Err); err != nil {
				return err
			}
		}
		for _, e := range s.Entries {
			if _, err := fmt.Fprintf(w, "- %s: %d\n", e.Token, e.Count); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if s := r.Topics; s != nil {
		if _, err := fmt.Fprintf(w, "## Topics\n\n"); err != nil {
			return err
		}
		if s.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n\n", s.Err); err != nil {
				return err
			}
		}
		for k, topic := range s.Topics {
			if _, err := fmt.Fprintf(w, "- Topic %d: %s\n", k, formatTerms(topic.Terms)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if s := r.Rephrasings; s != nil {
		if _, err := fmt.Fprintf(w, "## Similar Question Pairs (threshold=%.2f)\n\n", s.Threshold); err != nil {
			return err
		}
		if s.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n\n", s.Err); err != nil {
				return err
			}
		}
		for _, p := range s.Pairs {
			if _, err := fmt.Fprintf(w, "- %.2f: %q <-> %q\n", p.Score, p.QuestionA, p.QuestionB); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if s := r.EnglishWords; s != nil {
		if _, err := fmt.Fprintf(w, "## Top %d Most Common English Words\n\n%s\n",
			len(s.Words), strings.Join(s.Words, ", ")); err != nil {
			return err
		}
	}

	return nil
}

type jsonReport struct {
	CommonWords  *jsonCommonWords `json:"common_words,omitempty"`
	Topics       *jsonTopics      `json:"topics,omitempty"`
	Rephrasings  *jsonRephrasings `json:"rephrasings,omitempty"`
	EnglishWords []string         `json:"english_words,omitempty"`
}

type jsonCommonWords struct {
	Filtered bool        `json:"filtered"`
	Entries  []jsonEntry `json:"entries"`
	Error    string      `json:"error,omitempty"`
}

type jsonEntry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

type jsonTopics struct {
	Topics [][]jsonTerm `json:"topics"`
	Error  string       `json:"error,omitempty"`
}

type jsonTerm struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

type jsonRephrasings struct {
	Threshold float64    `json:"threshold"`
	Pairs     []jsonPair `json:"pairs"`
	Error     string     `json:"error,omitempty"`
}

type jsonPair struct {
	QuestionA string  `json:"question_a"`
	QuestionB string  `json:"question_b"`
	Score     float64 `json:"score"`
}

func renderJSON(w io.Writer, r Report) error {
	out := jsonReport{}

	if s := r.CommonWords; s != nil {
		jcw := &jsonCommonWords{Filtered: s.Filtered, Entries: []jsonEntry{}}
		for _, e := range s.Entries {
			jcw.Entries = append(jcw.Entries, jsonEntry{Token: e.Token, Count: e.Count})
		}
		if s.Err != nil {
			jcw.Error = s.Err.Error()
		}
		out.CommonWords = jcw
	}

	if s := r.Topics; s != nil {
		jt := &jsonTopics{Topics: [][]jsonTerm{}}
		for _, topic := range s.Topics {
			terms := make([]jsonTerm, 0, len(topic.Terms))
			for _, term := range topic.Terms {
				terms = append(terms, jsonTerm{Word: term.Word, Weight: term.Weight})
			}
			jt.Topics = append(jt.Topics, terms)
		}
		if s.Err != nil {
			jt.Error = s.Err.Error()
		}
		out.Topics = jt
	}

	if s := r.Rephrasings; s != nil {
		jr := &jsonRephrasings{Threshold: s.Threshold, Pairs: []jsonPair{}}
		for _, p := range s.Pairs {
			jr.Pairs = append(jr.Pairs, jsonPair{QuestionA: p.QuestionA, QuestionB: p.QuestionB, Score: p.Score})
		}
		if s.Err != nil {
			jr.Error = s.Err.Error()
		}
		out.Rephrasings = jr
	}

	if s := r.EnglishWords; s != nil {
		out.EnglishWords = s.Words
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatTerms(terms []topics.Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%s (%.3f)", t.Word, t.Weight)
	}
	return strings.Join(parts, ", ")
}
