// Package store persists parsed corpora and analysis runs.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the interface for persisting and querying analyzer data
type Store interface {
	Close() error

	// Corpus
	SaveMessages(ctx context.Context, source string, messages []Message) error
	GetMessages(ctx context.Context, source string) ([]Message, error)

	// Runs
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Message is one stored conversational turn.
type Message struct {
	Role string
	Text string
}

// Run records one completed analysis invocation.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Source     string   // export file the run analyzed
	Args       []string // CLI arguments for reproducibility
	ReportJSON string   // rendered JSON report
}

// RunBuilder mints runs with monotonic ULID identifiers.
type RunBuilder struct {
	entropy *ulid.MonotonicEntropy
}

// NewRunBuilder creates a run builder
func NewRunBuilder() *RunBuilder {
	return &RunBuilder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewRun creates a run record with a fresh ID and timestamp.
func (b *RunBuilder) NewRun(source string, args []string, reportJSON string) Run {
	return Run{
		ID:         ulid.MustNew(ulid.Now(), b.entropy).String(),
		CreatedAt:  time.Now().UTC(),
		Source:     source,
		Args:       args,
		ReportJSON: reportJSON,
	}
}
