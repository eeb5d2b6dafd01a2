package vectorize

import (
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBuildVocabularySorted(t *testing.T) {
	docs := [][]string{
		{"cat", "sat", "cat"},
		{"dog", "sat"},
	}
	vocab := Build(docs, 0)

	if vocab.Size() != 3 {
		t.Fatalf("Expected 3 terms, got %d", vocab.Size())
	}
	if !sort.StringsAreSorted(vocab.Terms) {
		t.Errorf("Vocabulary terms not sorted: %v", vocab.Terms)
	}
	for i, term := range vocab.Terms {
		if vocab.Index[term] != i {
			t.Errorf("Index[%q] = %d, want %d", term, vocab.Index[term], i)
		}
	}
}

func TestBuildVocabularyMaxFeatures(t *testing.T) {
	docs := [][]string{
		{"common", "common", "common", "rare"},
		{"common", "medium", "medium"},
	}
	vocab := Build(docs, 2)

	if vocab.Size() != 2 {
		t.Fatalf("Expected 2 terms with maxFeatures=2, got %d", vocab.Size())
	}
	// "common" (3) and "medium" (2) survive the frequency cut.
	if _, ok := vocab.Index["common"]; !ok {
		t.Error("Most frequent term should survive the cap")
	}
	if _, ok := vocab.Index["rare"]; ok {
		t.Error("Least frequent term should be dropped by the cap")
	}
}

func TestCountMatrix(t *testing.T) {
	docs := [][]string{
		{"cat", "cat", "sat"},
		{"dog"},
	}
	vocab := Build(docs, 0)
	m := CountMatrix(docs, vocab)

	r, c := m.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Matrix dims %dx%d, want 2x3", r, c)
	}
	if got := m.At(0, vocab.Index["cat"]); got != 2 {
		t.Errorf("Count of 'cat' in doc 0 = %v, want 2", got)
	}
	if got := m.At(1, vocab.Index["cat"]); got != 0 {
		t.Errorf("Count of 'cat' in doc 1 = %v, want 0", got)
	}
}

func TestTFIDFMatrixRowsNormalized(t *testing.T) {
	docs := [][]string{
		{"cat", "sat", "mat"},
		{"dog", "sat"},
		{"cat", "ran"},
	}
	vocab := Build(docs, 0)
	m := TFIDFMatrix(docs, vocab)

	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		row := m.RowView(i)
		norm := math.Sqrt(mat.Dot(row, row))
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("Row %d L2 norm = %v, want 1", i, norm)
		}
	}
}

func TestTFIDFMatrixNonNegative(t *testing.T) {
	docs := [][]string{
		{"cat", "sat"},
		{"dog", "sat"},
	}
	vocab := Build(docs, 0)
	m := TFIDFMatrix(docs, vocab)

	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if m.At(i, j) < 0 {
				t.Errorf("Negative TF-IDF weight at (%d,%d): %v", i, j, m.At(i, j))
			}
		}
	}
}

func TestCosine(t *testing.T) {
	a := mat.NewVecDense(3, []float64{1, 0, 1})
	b := mat.NewVecDense(3, []float64{1, 0, 1})
	c := mat.NewVecDense(3, []float64{0, 1, 0})
	zero := mat.NewVecDense(3, nil)

	if got := Cosine(a, b); math.Abs(got-1) > 1e-9 {
		t.Errorf("Cosine of identical vectors = %v, want 1", got)
	}
	if got := Cosine(a, c); got != 0 {
		t.Errorf("Cosine of orthogonal vectors = %v, want 0", got)
	}
	if got := Cosine(a, zero); got != 0 {
		t.Errorf("Cosine with zero vector = %v, want 0", got)
	}
	if Cosine(a, c) != Cosine(c, a) {
		t.Error("Cosine should be symmetric")
	}
}
