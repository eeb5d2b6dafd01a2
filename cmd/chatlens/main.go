package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cognicore/chatlens/pkg/chatlens"
	"github.com/cognicore/chatlens/pkg/chatlens/config"
	"github.com/cognicore/chatlens/pkg/chatlens/export"
	"github.com/cognicore/chatlens/pkg/chatlens/report"
	"github.com/cognicore/chatlens/pkg/chatlens/stoplist"
	"github.com/cognicore/chatlens/pkg/chatlens/store"
	"github.com/cognicore/chatlens/pkg/chatlens/store/sqlite"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("chatlens", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		commonWords   = fs.Bool("common-words", false, "Perform common words analysis")
		topicModeling = fs.Bool("topic-modeling", false, "Perform latent topic modeling")
		rephrasing    = fs.Bool("rephrasing", false, "Perform question rephrasing analysis")
		englishWords  = fs.Int("print-english-words", 0, "Print the top N most common English words")
		filterEnglish = fs.Bool("filter-english-words", false, "Filter common English words from the word counts")
		topN          = fs.Int("top-n", 20, "Number of top results for common words")
		numTopics     = fs.Int("num-topics", 10, "Number of topics for topic modeling")
		topWords      = fs.Int("top-words", 10, "Number of words per topic")
		threshold     = fs.Float64("similarity-threshold", 0.5, "Threshold for question rephrasing similarity")
		output        = fs.String("output", config.OutputText, "Output format (text, markdown, json)")
		stoplistPath  = fs.String("stoplist", "", "YAML stopword list replacing the built-in English list")
		dbPath        = fs.String("db", "", "SQLite database recording the corpus and the run")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: chatlens [flags] conversations.json")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	file := fs.Arg(0)

	opts := config.Options{
		CommonWords:         *commonWords,
		TopicModeling:       *topicModeling,
		Rephrasing:          *rephrasing,
		EnglishWords:        *englishWords,
		FilterEnglish:       *filterEnglish,
		TopN:                *topN,
		NumTopics:           *numTopics,
		TopWords:            *topWords,
		SimilarityThreshold: *threshold,
		Output:              *output,
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if !opts.AnalysisRequested() {
		fmt.Fprintln(stderr, "no analysis requested")
		fs.Usage()
		return 2
	}

	stops := stoplist.NewEnglish()
	if *stoplistPath != "" {
		sl, err := config.LoadStoplist(*stoplistPath)
		if err != nil {
			fmt.Fprintf(stderr, "load stoplist: %v\n", err)
			return 2
		}
		stops = stoplist.NewManager(sl.Terms)
	}

	convs, err := export.Load(file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	messages := export.UserMessages(convs)

	rep := chatlens.New(stops).Analyze(messages, opts)
	for _, analysisErr := range rep.Errs() {
		fmt.Fprintln(stderr, analysisErr)
	}

	if err := report.Render(stdout, rep, opts.Output); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return 1
	}

	if *dbPath != "" {
		if err := persist(context.Background(), *dbPath, file, args, convs, rep); err != nil {
			fmt.Fprintf(stderr, "persist run: %v\n", err)
			return 1
		}
	}

	if rep.Failed() {
		return 1
	}
	return 0
}

// persist records the parsed corpus and the rendered JSON report.
func persist(ctx context.Context, dbPath, source string, args []string, convs []export.Conversation, rep report.Report) error {
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	turns := export.Flatten(convs)
	stored := make([]store.Message, len(turns))
	for i, turn := range turns {
		stored[i] = store.Message{Role: turn.Role, Text: turn.Text}
	}
	if err := st.SaveMessages(ctx, source, stored); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, rep, config.OutputJSON); err != nil {
		return err
	}
	return st.SaveRun(ctx, store.NewRunBuilder().NewRun(source, args, buf.String()))
}
