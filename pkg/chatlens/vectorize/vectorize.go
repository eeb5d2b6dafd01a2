// Package vectorize builds term-document matrices over tokenized
// corpora. Vocabulary order is lexicographic so matrices are
// reproducible run to run.
package vectorize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Vocabulary maps terms to matrix column indices.
type Vocabulary struct {
	Terms []string       // lexicographically sorted
	Index map[string]int // term -> column
}

// Size returns the number of terms.
func (v Vocabulary) Size() int {
	return len(v.Terms)
}

// Build collects the vocabulary of the given tokenized documents.
// When maxFeatures > 0 and the corpus has more distinct terms, only
// the maxFeatures most frequent terms are kept (ties broken
// lexicographically ascending).
func Build(docs [][]string, maxFeatures int) Vocabulary {
	totals := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			if tok == "" {
				continue
			}
			totals[tok]++
		}
	}

	terms := make([]string, 0, len(totals))
	for tok := range totals {
		terms = append(terms, tok)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] == totals[terms[j]] {
				return terms[i] < terms[j]
			}
			return totals[terms[i]] > totals[terms[j]]
		})
		terms = terms[:maxFeatures]
	}

	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return Vocabulary{Terms: terms, Index: index}
}

// CountMatrix returns the raw term-frequency matrix: one row per
// document, one column per vocabulary term.
func CountMatrix(docs [][]string, vocab Vocabulary) *mat.Dense {
	m := mat.NewDense(len(docs), vocab.Size(), nil)
	for i, doc := range docs {
		for _, tok := range doc {
			if j, ok := vocab.Index[tok]; ok {
				m.Set(i, j, m.At(i, j)+1)
			}
		}
	}
	return m
}

// TFIDFMatrix returns the TF-IDF matrix with smooth inverse document
// frequency, idf = ln((1+n)/(1+df)) + 1, and L2-normalized rows.
func TFIDFMatrix(docs [][]string, vocab Vocabulary) *mat.Dense {
	tf := CountMatrix(docs, vocab)
	n, cols := tf.Dims()

	idf := make([]float64, cols)
	for j := 0; j < cols; j++ {
		df := 0
		for i := 0; i < n; i++ {
			if tf.At(i, j) > 0 {
				df++
			}
		}
		idf[j] = math.Log(float64(1+n)/float64(1+df)) + 1
	}

	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			tf.Set(i, j, tf.At(i, j)*idf[j])
		}
		normalizeRow(tf, i)
	}
	return tf
}

func normalizeRow(m *mat.Dense, i int) {
	_, cols := m.Dims()
	var sum float64
	for j := 0; j < cols; j++ {
		v := m.At(i, j)
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for j := 0; j < cols; j++ {
		m.Set(i, j, m.At(i, j)/norm)
	}
}

// Cosine returns the cosine similarity of two vectors. Zero vectors
// yield 0. For non-negative vectors the result lies in [0, 1].
func Cosine(a, b mat.Vector) float64 {
	na := math.Sqrt(mat.Dot(a, a))
	nb := math.Sqrt(mat.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	sim := mat.Dot(a, b) / (na * nb)
	// Guard against float rounding past 1.
	if sim > 1 {
		sim = 1
	}
	return sim
}
