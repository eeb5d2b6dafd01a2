// Package topics decomposes a corpus into latent topics via
// non-negative matrix factorization of its TF-IDF matrix.
package topics

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/chatlens/pkg/chatlens/internalerr"
	"github.com/cognicore/chatlens/pkg/chatlens/vectorize"
)

const (
	// MaxFeatures caps the vocabulary size for topic modeling.
	MaxFeatures = 1000

	// nmfIterations is the fixed multiplicative-update count.
	nmfIterations = 200

	// nmfSeed pins the factor initialization so runs are reproducible.
	nmfSeed = 42

	nmfEpsilon = 1e-9
)

// Term is a vocabulary term with its topic weight.
type Term struct {
	Word   string
	Weight float64
}

// Topic is an ordered list of terms, descending by weight.
type Topic struct {
	Terms []Term
}

// Model factorizes the tokenized documents into numTopics topics and
// returns the topWords heaviest terms of each, sorted by descending
// weight with lexicographic tie-break. Documents with no tokens are
// ignored; numTopics must not exceed the number of remaining documents.
func Model(docs [][]string, numTopics, topWords int) ([]Topic, error) {
	if numTopics < 1 {
		return nil, fmt.Errorf("numTopics %d: %w", numTopics, internalerr.ErrInvalidInput)
	}
	if topWords < 1 {
		return nil, fmt.Errorf("topWords %d: %w", topWords, internalerr.ErrInvalidInput)
	}

	var nonEmpty [][]string
	for _, doc := range docs {
		if len(doc) > 0 {
			nonEmpty = append(nonEmpty, doc)
		}
	}

	vocab := vectorize.Build(nonEmpty, MaxFeatures)
	if vocab.Size() == 0 {
		return nil, fmt.Errorf("empty vocabulary after filtering: %w", internalerr.ErrInsufficientData)
	}
	if numTopics > len(nonEmpty) {
		return nil, fmt.Errorf("%d topics requested but only %d non-empty documents: %w",
			numTopics, len(nonEmpty), internalerr.ErrInsufficientData)
	}

	v := vectorize.TFIDFMatrix(nonEmpty, vocab)
	_, h := factorize(v, numTopics)

	if topWords > vocab.Size() {
		topWords = vocab.Size()
	}

	result := make([]Topic, numTopics)
	for k := 0; k < numTopics; k++ {
		result[k] = Topic{Terms: topTerms(h, k, vocab.Terms, topWords)}
	}
	return result, nil
}

// factorize runs Lee-Seung multiplicative updates for the Frobenius
// objective: V ≈ W·H with W (docs × topics) and H (topics × terms)
// kept non-negative throughout.
func factorize(v *mat.Dense, k int) (*mat.Dense, *mat.Dense) {
	n, m := v.Dims()
	rng := rand.New(rand.NewSource(nmfSeed))

	w := randomMatrix(rng, n, k)
	h := randomMatrix(rng, k, m)

	for iter := 0; iter < nmfIterations; iter++ {
		// H <- H .* (Wt V) ./ (Wt W H + eps)
		var wtv, wtw, wtwh mat.Dense
		wtv.Mul(w.T(), v)
		wtw.Mul(w.T(), w)
		wtwh.Mul(&wtw, h)

		var hNext mat.Dense
		hNext.Apply(func(i, j int, val float64) float64 {
			return val * wtv.At(i, j) / (wtwh.At(i, j) + nmfEpsilon)
		}, h)
		h = &hNext

		// W <- W .* (V Ht) ./ (W H Ht + eps)
		var vht, hht, whht mat.Dense
		vht.Mul(v, h.T())
		hht.Mul(h, h.T())
		whht.Mul(w, &hht)

		var wNext mat.Dense
		wNext.Apply(func(i, j int, val float64) float64 {
			return val * vht.At(i, j) / (whht.At(i, j) + nmfEpsilon)
		}, w)
		w = &wNext
	}

	return w, h
}

func randomMatrix(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64() + 1e-3
	}
	return mat.NewDense(rows, cols, data)
}

// topTerms picks the heaviest terms of topic row k.
func topTerms(h *mat.Dense, k int, terms []string, topWords int) []Term {
	all := make([]Term, len(terms))
	for j, word := range terms {
		all[j] = Term{Word: word, Weight: h.At(k, j)}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Weight == all[j].Weight {
			return all[i].Word < all[j].Word
		}
		return all[i].Weight > all[j].Weight
	})
	return all[:topWords]
}
