package chatlens

import (
	"errors"
	"testing"

	"github.com/cognicore/chatlens/pkg/chatlens/config"
	"github.com/cognicore/chatlens/pkg/chatlens/internalerr"
	"github.com/cognicore/chatlens/pkg/chatlens/stoplist"
)

func newAnalyzer() *Analyzer {
	return New(stoplist.NewEnglish())
}

func TestAnalyzeCommonWordsUnfiltered(t *testing.T) {
	messages := []string{"the cat sat", "the dog sat", "the cat ran"}

	opts := config.Defaults()
	opts.CommonWords = true
	opts.TopN = 2

	rep := newAnalyzer().Analyze(messages, opts)
	if rep.CommonWords == nil {
		t.Fatal("Common words section missing")
	}

	entries := rep.CommonWords.Entries
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %v", entries)
	}
	if entries[0].Token != "the" || entries[0].Count != 3 {
		t.Errorf("Expected ('the', 3) first, got (%s, %d)", entries[0].Token, entries[0].Count)
	}
	// "cat" and "sat" tie at 2; lexicographic tie-break picks "cat".
	if entries[1].Token != "cat" || entries[1].Count != 2 {
		t.Errorf("Expected ('cat', 2) second, got (%s, %d)", entries[1].Token, entries[1].Count)
	}
}

func TestAnalyzeCommonWordsFiltered(t *testing.T) {
	messages := []string{"the cat sat", "the dog sat"}

	opts := config.Defaults()
	opts.CommonWords = true
	opts.FilterEnglish = true

	rep := newAnalyzer().Analyze(messages, opts)
	for _, e := range rep.CommonWords.Entries {
		if e.Token == "the" {
			t.Error("Filtered run should drop 'the'")
		}
	}
	if !rep.CommonWords.Filtered {
		t.Error("Section should record that filtering was on")
	}
}

func TestAnalyzeRephrasingNoQuestions(t *testing.T) {
	messages := []string{"statement one", "statement two", "statement three"}

	opts := config.Defaults()
	opts.Rephrasing = true

	rep := newAnalyzer().Analyze(messages, opts)
	if rep.Rephrasings == nil {
		t.Fatal("Rephrasing section missing")
	}
	if rep.Rephrasings.Err != nil {
		t.Errorf("Zero questions should not error: %v", rep.Rephrasings.Err)
	}
	if len(rep.Rephrasings.Pairs) != 0 {
		t.Errorf("Expected no pairs, got %v", rep.Rephrasings.Pairs)
	}
	if rep.Failed() {
		t.Error("Empty pair list is a success, not a failure")
	}
}

func TestAnalyzePartialFailure(t *testing.T) {
	// Two non-empty documents cannot support five topics, but the
	// sibling common-words analysis still succeeds.
	messages := []string{"python code question", "pasta recipe"}

	opts := config.Defaults()
	opts.CommonWords = true
	opts.TopicModeling = true
	opts.NumTopics = 5

	rep := newAnalyzer().Analyze(messages, opts)
	if rep.Topics == nil || !errors.Is(rep.Topics.Err, internalerr.ErrInsufficientData) {
		t.Fatalf("Expected topic modeling to fail with ErrInsufficientData, got %+v", rep.Topics)
	}
	if rep.CommonWords == nil || rep.CommonWords.Err != nil {
		t.Errorf("Common words should still succeed: %+v", rep.CommonWords)
	}
	if rep.Failed() {
		t.Error("Partial failure should not mark the whole report failed")
	}
}

func TestAnalyzeAllRequestedFailed(t *testing.T) {
	messages := []string{"python code question", "pasta recipe"}

	opts := config.Defaults()
	opts.TopicModeling = true
	opts.NumTopics = 5

	rep := newAnalyzer().Analyze(messages, opts)
	if !rep.Failed() {
		t.Error("Report should be failed when the only requested analysis failed")
	}
	if len(rep.Errs()) != 1 {
		t.Errorf("Expected 1 reported error, got %v", rep.Errs())
	}
}

func TestAnalyzeTopicModeling(t *testing.T) {
	messages := []string{
		"python code compiler question",
		"compiler design and python internals",
		"pasta recipe with tomato sauce",
		"tomato sauce and pasta cooking",
	}

	opts := config.Defaults()
	opts.TopicModeling = true
	opts.NumTopics = 2
	opts.TopWords = 3

	rep := newAnalyzer().Analyze(messages, opts)
	if rep.Topics == nil || rep.Topics.Err != nil {
		t.Fatalf("Topic modeling failed: %+v", rep.Topics)
	}
	if len(rep.Topics.Topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(rep.Topics.Topics))
	}
	for k, topic := range rep.Topics.Topics {
		if len(topic.Terms) != 3 {
			t.Errorf("Topic %d has %d terms, want 3", k, len(topic.Terms))
		}
	}
}

func TestAnalyzeEnglishWords(t *testing.T) {
	opts := config.Defaults()
	opts.EnglishWords = 5

	rep := newAnalyzer().Analyze(nil, opts)
	if rep.EnglishWords == nil {
		t.Fatal("English words section missing")
	}
	want := []string{"the", "be", "to", "of", "and"}
	if len(rep.EnglishWords.Words) != len(want) {
		t.Fatalf("Expected %d words, got %v", len(want), rep.EnglishWords.Words)
	}
	for i, w := range want {
		if rep.EnglishWords.Words[i] != w {
			t.Errorf("Word %d = %q, want %q", i, rep.EnglishWords.Words[i], w)
		}
	}
}

func TestAnalyzeNothingRequested(t *testing.T) {
	rep := newAnalyzer().Analyze([]string{"some text"}, config.Defaults())
	if rep.CommonWords != nil || rep.Topics != nil || rep.Rephrasings != nil || rep.EnglishWords != nil {
		t.Errorf("Nothing was requested but report has sections: %+v", rep)
	}
}
