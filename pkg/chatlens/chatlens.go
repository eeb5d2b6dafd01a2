// Package chatlens analyzes chat-assistant conversation transcripts:
// word frequencies, latent topics, and question-rephrasing detection.
package chatlens

import (
	"github.com/cognicore/chatlens/pkg/chatlens/config"
	"github.com/cognicore/chatlens/pkg/chatlens/freq"
	"github.com/cognicore/chatlens/pkg/chatlens/ingest"
	"github.com/cognicore/chatlens/pkg/chatlens/rephrase"
	"github.com/cognicore/chatlens/pkg/chatlens/report"
	"github.com/cognicore/chatlens/pkg/chatlens/stoplist"
	"github.com/cognicore/chatlens/pkg/chatlens/topics"
)

// Analyzer is the analysis engine facade. It is a pure function of
// (messages, options); no state survives a call to Analyze.
type Analyzer struct {
	stops    *stoplist.Manager
	plain    *ingest.Tokenizer // normalization only
	filtered *ingest.Tokenizer // normalization plus stopword removal
}

// New creates an analyzer using the given stopword list.
func New(stops *stoplist.Manager) *Analyzer {
	return &Analyzer{
		stops:    stops,
		plain:    ingest.NewTokenizer(nil),
		filtered: ingest.NewTokenizer(stops.All()),
	}
}

// Analyze runs every analysis selected in opts over the messages.
// Analyses are independent: one failing is recorded in its section
// and does not abort the others. opts must already be validated.
func (a *Analyzer) Analyze(messages []string, opts config.Options) report.Report {
	var rep report.Report

	if opts.CommonWords {
		rep.CommonWords = a.commonWords(messages, opts)
	}
	if opts.TopicModeling {
		rep.Topics = a.topicModeling(messages, opts)
	}
	if opts.Rephrasing {
		rep.Rephrasings = a.rephrasing(messages, opts)
	}
	if opts.EnglishWords > 0 {
		rep.EnglishWords = &report.EnglishWordsSection{Words: a.stops.Top(opts.EnglishWords)}
	}

	return rep
}

func (a *Analyzer) commonWords(messages []string, opts config.Options) *report.CommonWordsSection {
	tokenizer := a.plain
	if opts.FilterEnglish {
		tokenizer = a.filtered
	}

	counter := freq.NewCounter()
	for _, msg := range messages {
		counter.Add(tokenizer.Tokenize(msg))
	}

	return &report.CommonWordsSection{
		Filtered: opts.FilterEnglish,
		Entries:  counter.TopN(opts.TopN),
	}
}

// topicModeling always removes stopwords: high-frequency glue words
// would otherwise dominate every topic.
func (a *Analyzer) topicModeling(messages []string, opts config.Options) *report.TopicsSection {
	docs := make([][]string, len(messages))
	for i, msg := range messages {
		docs[i] = a.filtered.Tokenize(msg)
	}

	result, err := topics.Model(docs, opts.NumTopics, opts.TopWords)
	return &report.TopicsSection{Topics: result, Err: err}
}

func (a *Analyzer) rephrasing(messages []string, opts config.Options) *report.RephrasingSection {
	scanner := rephrase.NewScanner(a.plain)
	pairs, err := scanner.Scan(messages, opts.SimilarityThreshold)
	return &report.RephrasingSection{
		Threshold: opts.SimilarityThreshold,
		Pairs:     pairs,
		Err:       err,
	}
}
