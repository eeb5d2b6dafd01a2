package stoplist

import "strings"

// englishTop100 lists the 100 most common English words in frequency
// order. It is the default filter list and the source for Top.
var englishTop100 = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i", "it", "for", "not", "on", "with", "he",
	"as", "you", "do", "at", "this", "but", "his", "by", "from", "they", "we", "say", "her", "she", "or",
	"an", "will", "my", "one", "all", "would", "there", "their", "what", "so", "up", "out", "if", "about",
	"who", "get", "which", "go", "me", "when", "make", "can", "like", "time", "no", "just", "him", "know",
	"take", "people", "into", "year", "your", "good", "some", "could", "them", "see", "other", "than",
	"then", "now", "look", "only", "come", "its", "over", "think", "also", "back", "after", "use", "two",
	"how", "our", "work", "first", "well", "way", "even", "new", "want", "because", "any", "these",
	"give", "day", "most", "us",
}

// English returns the built-in common-English word list in frequency order.
func English() []string {
	out := make([]string, len(englishTop100))
	copy(out, englishTop100)
	return out
}

// Manager handles a ranked stopword list. Membership checks are
// case-insensitive; Top preserves the original ranking.
type Manager struct {
	ranked []string
	stops  map[string]struct{}
}

// NewManager creates a manager over the given ranked word list.
func NewManager(words []string) *Manager {
	m := &Manager{
		ranked: make([]string, 0, len(words)),
		stops:  make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		m.Add(w)
	}
	return m
}

// NewEnglish creates a manager over the built-in English top-100 list.
func NewEnglish() *Manager {
	return NewManager(englishTop100)
}

// IsStop checks if a word is on the list.
func (m *Manager) IsStop(word string) bool {
	_, ok := m.stops[strings.ToLower(word)]
	return ok
}

// Add appends a word to the list, ignoring duplicates.
func (m *Manager) Add(word string) {
	lower := strings.ToLower(word)
	if _, ok := m.stops[lower]; ok {
		return
	}
	m.stops[lower] = struct{}{}
	m.ranked = append(m.ranked, lower)
}

// Remove drops a word from the list.
func (m *Manager) Remove(word string) {
	lower := strings.ToLower(word)
	if _, ok := m.stops[lower]; !ok {
		return
	}
	delete(m.stops, lower)
	for i, w := range m.ranked {
		if w == lower {
			m.ranked = append(m.ranked[:i], m.ranked[i+1:]...)
			break
		}
	}
}

// All returns all words in rank order.
func (m *Manager) All() []string {
	out := make([]string, len(m.ranked))
	copy(out, m.ranked)
	return out
}

// Top returns the n highest-ranked words. n <= 0 yields an empty
// slice; n beyond the list length clamps.
func (m *Manager) Top(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(m.ranked) {
		n = len(m.ranked)
	}
	out := make([]string, n)
	copy(out, m.ranked[:n])
	return out
}
