package freq

import "sort"

// Counter accumulates token occurrence counts across a corpus.
type Counter struct {
	counts map[string]int
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of each token.
func (c *Counter) Add(tokens []string) {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		c.counts[tok]++
	}
}

// Count returns the occurrence count for a token.
func (c *Counter) Count(token string) int {
	return c.counts[token]
}

// Distinct returns the number of distinct tokens seen.
func (c *Counter) Distinct() int {
	return len(c.counts)
}

// Entry is a (token, count) pair.
type Entry struct {
	Token string
	Count int
}

// TopN returns the n most frequent tokens, sorted by descending count
// with ties broken lexicographically ascending. n <= 0 yields an empty
// result; n beyond the distinct-token count clamps.
func (c *Counter) TopN(n int) []Entry {
	if n <= 0 {
		return nil
	}

	entries := make([]Entry, 0, len(c.counts))
	for tok, count := range c.counts {
		entries = append(entries, Entry{Token: tok, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Token < entries[j].Token
		}
		return entries[i].Count > entries[j].Count
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
