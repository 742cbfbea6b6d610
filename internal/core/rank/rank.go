// Package rank implements BM25 scoring over a fixed document set.
// An Index is immutable once built; corpus changes mean building a new
// Index and swapping it in, so concurrent readers never see partial state
package rank

import (
	"math"

	"faqrelay/internal/core/tokenize"
)

// Options controls the BM25 scoring function
type Options struct {
	// K1 is the term frequency saturation knob (0 means default 1.2)
	K1 float64
	// B is the document length normalization strength (0 means default 0.75)
	B float64
}

const (
	defaultK1 = 1.2
	defaultB  = 0.75
)

// posting is one term occurrence row, doc is the build-order position
type posting struct {
	doc int
	tf  int
}

// Index holds the inverted index plus per term IDF computed at build time
type Index struct {
	opts Options
	tk   *tokenize.Tokenizer

	n       int
	docLens []int
	avgLen  float64

	postings map[string][]posting
	idf      map[string]float64
}

// New builds an index over docs. Document order is preserved and breaks
// score ties, first indexed wins
func New(docs []string, opts Options) *Index {
	if opts.K1 == 0 {
		opts.K1 = defaultK1
	}
	if opts.B == 0 {
		opts.B = defaultB
	}

	ix := &Index{
		opts:     opts,
		tk:       tokenize.New(),
		n:        len(docs),
		docLens:  make([]int, len(docs)),
		postings: make(map[string][]posting),
		idf:      make(map[string]float64),
	}

	var total int
	for d, doc := range docs {
		terms := ix.tk.Terms(doc)
		ix.docLens[d] = len(terms)
		total += len(terms)

		// per doc term frequencies, appended in doc order
		tfs := make(map[string]int, len(terms))
		for _, t := range terms {
			tfs[t]++
		}
		for t, tf := range tfs {
			ix.postings[t] = append(ix.postings[t], posting{doc: d, tf: tf})
		}
	}
	if ix.n > 0 {
		ix.avgLen = float64(total) / float64(ix.n)
	}

	// IDF(t) = ln(1 + (N - n_t + 0.5) / (n_t + 0.5))
	for t, ps := range ix.postings {
		nt := float64(len(ps))
		ix.idf[t] = math.Log(1 + (float64(ix.n)-nt+0.5)/(nt+0.5))
	}
	return ix
}

// Size returns the number of indexed documents
func (ix *Index) Size() int { return ix.n }

// Vocab returns the number of distinct indexed terms
func (ix *Index) Vocab() int { return len(ix.postings) }

// AvgDocLen returns the average token count per document
func (ix *Index) AvgDocLen() float64 { return ix.avgLen }

// Score computes the BM25 score of query against every document, in
// document order. Query terms absent from the index contribute nothing
func (ix *Index) Score(query string) []float64 {
	scores := make([]float64, ix.n)
	if ix.n == 0 {
		return scores
	}

	avg := ix.avgLen
	if avg == 0 {
		// every indexed document tokenized to nothing
		avg = 1
	}

	for _, t := range ix.tk.Terms(query) {
		ps, ok := ix.postings[t]
		if !ok {
			continue
		}
		idf := ix.idf[t]
		for _, p := range ps {
			tf := float64(p.tf)
			norm := 1 - ix.opts.B + ix.opts.B*float64(ix.docLens[p.doc])/avg
			scores[p.doc] += idf * tf * (ix.opts.K1 + 1) / (tf + ix.opts.K1*norm)
		}
	}
	return scores
}

// Search returns the position of the best scoring document, its score, and
// whether the score clears threshold (boundary counts as a match). Ties keep
// the first indexed document. An empty index returns (-1, 0, false)
func (ix *Index) Search(query string, threshold float64) (doc int, score float64, match bool) {
	if ix.n == 0 {
		return -1, 0, false
	}
	scores := ix.Score(query)
	doc = 0
	score = scores[0]
	for d := 1; d < len(scores); d++ {
		if scores[d] > score {
			doc, score = d, scores[d]
		}
	}
	return doc, score, score >= threshold
}
