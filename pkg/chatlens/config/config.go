package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/chatlens/pkg/chatlens/internalerr"
)

// Output formats for rendered reports.
const (
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
)

// Options enumerates every analysis option and its default. Validate
// is called once at startup before any work begins.
type Options struct {
	CommonWords   bool
	TopicModeling bool
	Rephrasing    bool

	// EnglishWords requests the built-in common-English list;
	// 0 means not requested.
	EnglishWords int

	// FilterEnglish drops common-English words from the word counts.
	FilterEnglish bool

	TopN                int
	NumTopics           int
	TopWords            int
	SimilarityThreshold float64
	Output              string
}

// Defaults returns the option defaults.
func Defaults() Options {
	return Options{
		TopN:                20,
		NumTopics:           10,
		TopWords:            10,
		SimilarityThreshold: 0.5,
		Output:              OutputText,
	}
}

// AnalysisRequested reports whether any analysis was selected.
func (o Options) AnalysisRequested() bool {
	return o.CommonWords || o.TopicModeling || o.Rephrasing || o.EnglishWords > 0
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.TopN < 1 {
		return fmt.Errorf("top-n must be positive, got %d: %w", o.TopN, internalerr.ErrInvalidConfig)
	}
	if o.NumTopics < 1 {
		return fmt.Errorf("num-topics must be positive, got %d: %w", o.NumTopics, internalerr.ErrInvalidConfig)
	}
	if o.TopWords < 1 {
		return fmt.Errorf("top-words must be positive, got %d: %w", o.TopWords, internalerr.ErrInvalidConfig)
	}
	if o.EnglishWords < 0 {
		return fmt.Errorf("print-english-words must be non-negative, got %d: %w", o.EnglishWords, internalerr.ErrInvalidConfig)
	}
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity-threshold must be within [0,1], got %v: %w",
			o.SimilarityThreshold, internalerr.ErrInvalidConfig)
	}
	switch o.Output {
	case OutputText, OutputMarkdown, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q: %w", o.Output, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
